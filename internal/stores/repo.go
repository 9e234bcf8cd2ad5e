package stores

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryRow is one stocked product at a store.
type InventoryRow struct {
	ProductID   int64           `gorm:"column:product_id"`
	Barcode     string          `gorm:"column:barcode"`
	Name        string          `gorm:"column:name"`
	Price       decimal.Decimal `gorm:"column:price"`
	ImageURL    *string         `gorm:"column:image_url"`
	Quantity    int             `gorm:"column:quantity"`
	LastUpdated time.Time       `gorm:"column:last_updated"`
}

const storeInventoryQuery = `
SELECT p.id AS product_id,
       p.barcode,
       p.name,
       p.price,
       p.image_url,
       i.quantity,
       i.last_updated
FROM inventory i
JOIN products p ON p.id = i.product_id
WHERE i.store_id = ?
ORDER BY p.name, p.id
`

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every store ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).Order("id").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// FindByID loads a store by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// ListInventory returns the store's stocked products ordered by name.
func (r *Repository) ListInventory(ctx context.Context, storeID int64) ([]InventoryRow, error) {
	var rows []InventoryRow
	if err := r.db.WithContext(ctx).Raw(storeInventoryQuery, storeID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
