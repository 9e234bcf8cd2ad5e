package models

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog entry scanned at the register by barcode.
type Product struct {
	ID                int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Barcode           string          `gorm:"column:barcode;not null;uniqueIndex"`
	Name              string          `gorm:"column:name;not null"`
	Description       *string         `gorm:"column:description"`
	Ingredients       *string         `gorm:"column:ingredients"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL          *string         `gorm:"column:image_url"`
	ProductLine       *string         `gorm:"column:product_line;index"`
	PrimaryCategory   *string         `gorm:"column:primary_category"`
	SecondaryCategory *string         `gorm:"column:secondary_category"`
	TertiaryCategory  *string         `gorm:"column:tertiary_category"`
}
