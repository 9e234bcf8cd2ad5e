package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxBarcodeLength = 64

type priceResponse struct {
	StoreID            int64   `json:"storeId"`
	Barcode            string  `json:"barcode"`
	Name               string  `json:"name"`
	OriginalPrice      float64 `json:"originalPrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	FinalPrice         float64 `json:"finalPrice"`
}

type deductRequest struct {
	StoreID  int64  `json:"storeId" validate:"required,gt=0"`
	Barcode  string `json:"barcode" validate:"required,max=64"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type deductBatchRequest struct {
	StoreID int64                 `json:"storeId" validate:"required,gt=0"`
	Items   []inventory.BatchItem `json:"items" validate:"required,min=1,dive"`
}

// InventoryCheck reports whether a store can fill the requested quantity.
func InventoryCheck(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		storeID, err := validators.RequireQueryInt(r, "storeId", 1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		barcode, err := validators.RequireQueryString(r, "barcode", maxBarcodeLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.RequireQueryInt(r, "quantity", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := withStore(r, logg, storeID)
		result, err := svc.CheckAvailability(ctx, storeID, barcode, int(quantity))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, result)
	}
}

// InventoryPrice returns the unit price after the best active sale.
func InventoryPrice(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		storeID, err := validators.RequireQueryInt(r, "storeId", 1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		barcode, err := validators.RequireQueryString(r, "barcode", maxBarcodeLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := withStore(r, logg, storeID)
		quote, err := svc.PriceLookup(ctx, storeID, barcode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, priceResponse{
			StoreID:            quote.StoreID,
			Barcode:            quote.Barcode,
			Name:               quote.Name,
			OriginalPrice:      quote.OriginalPrice.InexactFloat64(),
			DiscountPercentage: quote.DiscountPercentage.InexactFloat64(),
			FinalPrice:         quote.FinalPrice.InexactFloat64(),
		})
	}
}

// InventoryDeduct removes stock for one scanned item.
func InventoryDeduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var req deductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := withStore(r, logg, req.StoreID)
		result, err := svc.DeductSingle(ctx, req.StoreID, req.Barcode, req.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, result)
	}
}

// InventoryDeductBatch removes stock for a whole cart or none of it.
func InventoryDeductBatch(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var req deductBatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := withStore(r, logg, req.StoreID)
		if logg != nil {
			ctx = logg.WithField(ctx, "item_count", len(req.Items))
		}
		result, err := svc.DeductBatch(ctx, req.StoreID, req.Items)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, result)
	}
}
