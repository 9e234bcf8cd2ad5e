package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// One connection serializes writers the way row locks do in Postgres.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

type fixture struct {
	conn    *gorm.DB
	service Service
	repo    *Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewFromGorm(conn), nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{conn: conn, service: svc, repo: repo}
}

func (f *fixture) store(t *testing.T, id int64, name string) *models.Store {
	t.Helper()
	store := &models.Store{ID: id, Name: name}
	if err := f.conn.Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func (f *fixture) product(t *testing.T, barcode, name, price string, line *string) *models.Product {
	t.Helper()
	product := &models.Product{
		Barcode:     barcode,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		ProductLine: line,
	}
	if err := f.conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func (f *fixture) stock(t *testing.T, storeID, productID int64, quantity int) {
	t.Helper()
	record := &models.InventoryRecord{
		StoreID:     storeID,
		ProductID:   productID,
		Quantity:    quantity,
		LastUpdated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := f.conn.Create(record).Error; err != nil {
		t.Fatalf("create inventory: %v", err)
	}
}

func (f *fixture) sale(t *testing.T, name, percent string, line *string, active bool, productIDs ...int64) *models.Sale {
	t.Helper()
	sale := &models.Sale{
		Name:               name,
		DiscountPercentage: decimal.RequireFromString(percent),
		ProductLine:        line,
		IsActive:           active,
	}
	if err := f.conn.Create(sale).Error; err != nil {
		t.Fatalf("create sale: %v", err)
	}
	for _, id := range productIDs {
		if err := f.conn.Create(&models.SaleProduct{SaleID: sale.ID, ProductID: id}).Error; err != nil {
			t.Fatalf("link sale product: %v", err)
		}
	}
	return sale
}

func (f *fixture) quantity(t *testing.T, storeID, productID int64) int {
	t.Helper()
	var record models.InventoryRecord
	if err := f.conn.WithContext(context.Background()).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		First(&record).Error; err != nil {
		t.Fatalf("load inventory: %v", err)
	}
	return record.Quantity
}

func strPtr(v string) *string {
	return &v
}
