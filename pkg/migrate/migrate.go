package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// DefaultDir is the migrations directory inside the embedded filesystem.
const DefaultDir = "migrations"

//go:embed migrations/*.sql
var embedded embed.FS

// Run executes a goose command against the embedded migrations.
func Run(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}

	goose.SetBaseFS(embedded)
	defer goose.SetBaseFS(nil)

	// The ledger schema targets Postgres; SQLite deployments are bootstrapped by GORM.
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, DefaultDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
