package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "STOREFRONT_APP_ENV"
	EnvPort     = "STOREFRONT_APP_PORT"
	EnvLogLevel = "STOREFRONT_LOG_LEVEL"

	EnvDBDSN      = "STOREFRONT_DB_DSN"
	EnvDBHost     = "STOREFRONT_DB_HOST"
	EnvDBPort     = "STOREFRONT_DB_PORT"
	EnvDBUser     = "STOREFRONT_DB_USER"
	EnvDBPassword = "STOREFRONT_DB_PASSWORD"
	EnvDBName     = "STOREFRONT_DB_NAME"
	EnvDBSSLMode  = "STOREFRONT_DB_SSLMODE"

	EnvRedisURL = "STOREFRONT_REDIS_URL"

	EnvUseSQLite   = "STOREFRONT_USE_SQLITE"
	EnvAutoMigrate = "STOREFRONT_AUTO_MIGRATE"

	EnvStaticDir        = "STOREFRONT_STATIC_DIR"
	EnvCategoryCacheTTL = "STOREFRONT_CATEGORY_CACHE_TTL"
	EnvCORSOrigins      = "STOREFRONT_CORS_ALLOWED_ORIGINS"
)

const defaultSQLiteDSN = "file:storefront.db?_busy_timeout=5000&_foreign_keys=on"

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
