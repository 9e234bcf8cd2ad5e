package stores

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// StoreDTO is the public store payload.
type StoreDTO struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StreetAddress *string `json:"streetAddress,omitempty"`
}

// InventoryLineDTO is one row of a store's stock sheet.
type InventoryLineDTO struct {
	ProductID   int64     `json:"productId"`
	Barcode     string    `json:"barcode"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// StoreInventoryDTO groups a store with its stock sheet.
type StoreInventoryDTO struct {
	Store StoreDTO           `json:"store"`
	Items []InventoryLineDTO `json:"items"`
}

// FromModel maps the persisted store into its payload.
func FromModel(m models.Store) StoreDTO {
	return StoreDTO{
		ID:            m.ID,
		Name:          m.Name,
		StreetAddress: m.StreetAddress,
	}
}

func fromRow(row InventoryRow) InventoryLineDTO {
	return InventoryLineDTO{
		ProductID:   row.ProductID,
		Barcode:     row.Barcode,
		Name:        row.Name,
		Price:       row.Price.InexactFloat64(),
		ImageURL:    row.ImageURL,
		Quantity:    row.Quantity,
		LastUpdated: row.LastUpdated.UTC(),
	}
}
