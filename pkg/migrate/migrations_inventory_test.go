package migrate

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	matches, err := fs.Glob(embedded, DefaultDir+"/*_create_inventory.sql")
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no inventory migration file found")
	}

	data, err := fs.ReadFile(embedded, matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory",
		"PRIMARY KEY (store_id, product_id)",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"CHECK (quantity >= 0)",
		"DROP TABLE IF EXISTS inventory",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSalesMigrationLinksProducts(t *testing.T) {
	matches, err := fs.Glob(embedded, DefaultDir+"/*_create_sales.sql")
	if err != nil || len(matches) == 0 {
		t.Fatalf("sales migration not found: %v", err)
	}
	data, err := fs.ReadFile(embedded, matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS sale_products",
		"is_active BOOLEAN NOT NULL DEFAULT TRUE",
		"PRIMARY KEY (sale_id, product_id)",
	} {
		if !strings.Contains(string(data), sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestEmbeddedMigrationsValidate(t *testing.T) {
	if err := ValidateFS(embedded, DefaultDir); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestValidateFSRejectsBadNames(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/create_things.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	if err := ValidateFS(fsys, "migrations"); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestValidateFSRejectsMissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/20250301120000_create_things.sql": {Data: []byte("-- +goose Up\nCREATE TABLE things();\n")},
	}
	if err := ValidateFS(fsys, "migrations"); err == nil {
		t.Fatal("expected missing goose Down error")
	}
}
