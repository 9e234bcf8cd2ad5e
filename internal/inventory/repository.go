package inventory

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockLevel is a product joined with its on-hand quantity at one store.
type StockLevel struct {
	ProductID   int64           `gorm:"column:product_id"`
	Barcode     string          `gorm:"column:barcode"`
	Name        string          `gorm:"column:name"`
	Price       decimal.Decimal `gorm:"column:price"`
	ProductLine *string         `gorm:"column:product_line"`
	Quantity    int             `gorm:"column:quantity"`
}

const stockLevelQuery = `
SELECT p.id AS product_id,
       p.barcode,
       p.name,
       p.price,
       p.product_line,
       i.quantity
FROM inventory i
JOIN products p ON p.id = i.product_id
WHERE i.store_id = ? AND p.barcode = ?
`

// The WHERE clause is the whole check: a row comes back only when enough stock remained.
const conditionalDecrementQuery = `
UPDATE inventory
SET quantity = quantity - ?, last_updated = ?
WHERE store_id = ?
  AND product_id = (SELECT id FROM products WHERE barcode = ?)
  AND quantity >= ?
RETURNING quantity
`

const maxActiveDiscountQuery = `
SELECT COALESCE(MAX(s.discount_percentage), 0) AS discount_percentage
FROM sales s
WHERE s.is_active = ?
  AND (
    s.id IN (SELECT sp.sale_id FROM sale_products sp WHERE sp.product_id = ?)
    OR (s.product_line IS NOT NULL AND s.product_line = ?)
  )
`

type discountRow struct {
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage"`
}

type remainingRow struct {
	Quantity int `gorm:"column:quantity"`
}

// Repository persists inventory quantities and reads pricing data.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx, now: r.now}
}

// FindStockLevel returns gorm.ErrRecordNotFound when the store does not carry the barcode.
func (r *Repository) FindStockLevel(ctx context.Context, storeID int64, barcode string) (*StockLevel, error) {
	var rows []StockLevel
	if err := r.db.WithContext(ctx).Raw(stockLevelQuery, storeID, barcode).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// FindProductByBarcode loads the catalog entry regardless of store.
func (r *Repository) FindProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// MaxActiveDiscount returns the largest active discount linked to the product
// directly or through its product line, or zero.
func (r *Repository) MaxActiveDiscount(ctx context.Context, productID int64, productLine *string) (decimal.Decimal, error) {
	var rows []discountRow
	if err := r.db.WithContext(ctx).Raw(maxActiveDiscountQuery, true, productID, productLine).Scan(&rows).Error; err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return rows[0].DiscountPercentage, nil
}

// DecrementIfAvailable removes quantity units in one conditional statement.
// ok is false when no row matched: either the store does not carry the
// barcode or fewer than quantity units remain.
func (r *Repository) DecrementIfAvailable(ctx context.Context, storeID int64, barcode string, quantity int) (remaining int, ok bool, err error) {
	var rows []remainingRow
	err = r.db.WithContext(ctx).
		Raw(conditionalDecrementQuery, quantity, r.now().UTC(), storeID, barcode, quantity).
		Scan(&rows).Error
	if err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].Quantity, true, nil
}
