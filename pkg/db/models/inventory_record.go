package models

import "time"

// InventoryRecord tracks the on-hand quantity of one product at one store.
type InventoryRecord struct {
	StoreID     int64     `gorm:"column:store_id;primaryKey;autoIncrement:false"`
	ProductID   int64     `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Quantity    int       `gorm:"column:quantity;not null;default:0;check:quantity >= 0"`
	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime"`
	Store       *Store    `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Product     *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (InventoryRecord) TableName() string {
	return "inventory"
}
