package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/inventory"
	"github.com/angelmondragon/storefront-backend/internal/stores"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// NewPOSRouter wires the register-facing inventory ledger endpoints.
func NewPOSRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	idempotencyStore redis.IdempotencyStore,
	gatherer prometheus.Gatherer,
	inventoryService inventory.Service,
) http.Handler {
	r := newBaseRouter(cfg, logg, dbP, redisP, gatherer)

	idempotent := middleware.Idempotency(idempotencyStore, logg)
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/check", controllers.InventoryCheck(inventoryService, logg))
		r.Get("/price", controllers.InventoryPrice(inventoryService, logg))
		r.With(idempotent).Post("/deduct", controllers.InventoryDeduct(inventoryService, logg))
		r.With(idempotent).Post("/deduct-batch", controllers.InventoryDeductBatch(inventoryService, logg))
	})

	return r
}

// NewCatalogRouter wires the customer website API and its static assets.
func NewCatalogRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	gatherer prometheus.Gatherer,
	catalogService catalog.Service,
	storeService stores.Service,
) http.Handler {
	r := newBaseRouter(cfg, logg, dbP, redisP, gatherer)

	r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
	r.Get("/products", controllers.CatalogProducts(catalogService, logg))
	r.Get("/stores", controllers.StoreList(storeService, logg))
	r.Get("/inventory/{storeId}", controllers.StoreInventory(storeService, logg))

	if dir := cfg.Catalog.StaticDir; dir != "" {
		r.Handle("/*", http.FileServer(http.Dir(dir)))
	}

	return r
}

func newBaseRouter(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger, gatherer prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.Health())
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
