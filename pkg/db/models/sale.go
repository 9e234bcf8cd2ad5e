package models

import "github.com/shopspring/decimal"

// Sale is a percentage discount that targets linked products or a whole product line.
type Sale struct {
	ID                 int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name               string          `gorm:"column:name;not null"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null"`
	ProductLine        *string         `gorm:"column:product_line"`
	IsActive           bool            `gorm:"column:is_active;not null"`
}

// SaleProduct links a sale directly to a product.
type SaleProduct struct {
	SaleID    int64 `gorm:"column:sale_id;primaryKey;autoIncrement:false"`
	ProductID int64 `gorm:"column:product_id;primaryKey;autoIncrement:false"`
}

// All lists every model in dependency order for schema bootstrapping in tests.
func All() []any {
	return []any{&Product{}, &Store{}, &InventoryRecord{}, &Sale{}, &SaleProduct{}}
}
