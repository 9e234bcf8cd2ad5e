package inventory

import "github.com/shopspring/decimal"

// AvailabilityResult answers whether a store can fill a requested quantity.
type AvailabilityResult struct {
	StoreID           int64  `json:"storeId"`
	Barcode           string `json:"barcode"`
	QuantityRequested int    `json:"quantityRequested"`
	QuantityAvailable int    `json:"quantityAvailable"`
	Available         bool   `json:"inStock"`
}

// PriceQuote is the register price for one unit after the best active sale.
type PriceQuote struct {
	StoreID            int64
	Barcode            string
	Name               string
	OriginalPrice      decimal.Decimal
	DiscountPercentage decimal.Decimal
	FinalPrice         decimal.Decimal
}

// DeductionResult reports a committed single-item deduction.
type DeductionResult struct {
	StoreID           int64  `json:"storeId"`
	Barcode           string `json:"barcode"`
	QuantityDeducted  int    `json:"quantityDeducted"`
	RemainingQuantity int    `json:"remainingQuantity"`
}

// BatchItem is one cart line submitted for deduction.
type BatchItem struct {
	Barcode  string `json:"barcode" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// DeductedItem is one committed cart line.
type DeductedItem struct {
	Barcode           string `json:"barcode"`
	QuantityDeducted  int    `json:"quantityDeducted"`
	RemainingQuantity int    `json:"remainingQuantity"`
}

// BatchResult reports a committed cart deduction in submission order.
type BatchResult struct {
	StoreID       int64          `json:"storeId"`
	ItemsDeducted []DeductedItem `json:"itemsDeducted"`
}
