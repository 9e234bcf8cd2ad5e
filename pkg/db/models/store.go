package models

// Store is a physical market location that stocks products.
type Store struct {
	ID            int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string  `gorm:"column:name;not null"`
	StreetAddress *string `gorm:"column:street_address"`
}
