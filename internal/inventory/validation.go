package inventory

import (
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func validateLookup(storeID int64, barcode string) error {
	if storeID <= 0 {
		return invalidField("storeId", "must be a positive integer")
	}
	if barcode == "" {
		return invalidField("barcode", "is required")
	}
	return nil
}

// validateBatch checks every line before any storage access and returns
// trimmed copies in submission order.
func validateBatch(storeID int64, items []BatchItem) ([]BatchItem, error) {
	if storeID <= 0 {
		return nil, invalidField("storeId", "must be a positive integer")
	}
	if len(items) == 0 {
		return nil, invalidField("items", "must contain at least one item")
	}

	normalized := make([]BatchItem, len(items))
	for i, item := range items {
		barcode := strings.TrimSpace(item.Barcode)
		if barcode == "" {
			return nil, invalidField(fmt.Sprintf("items[%d].barcode", i), "is required")
		}
		if item.Quantity <= 0 {
			return nil, invalidField(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
		normalized[i] = BatchItem{Barcode: barcode, Quantity: item.Quantity}
	}
	return normalized, nil
}

func invalidField(field, reason string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s %s", field, reason)).
		WithDetails(map[string]string{field: reason})
}
