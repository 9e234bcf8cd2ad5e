package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/stores"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// StoreList returns every store.
func StoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, list)
	}
}

// StoreInventory returns the stock sheet for the store in the path.
func StoreInventory(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		storeID, err := validators.ParseIntParam("storeId", chi.URLParam(r, "storeId"), 1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := withStore(r, logg, storeID)
		sheet, err := svc.Inventory(ctx, storeID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, sheet)
	}
}

func withStore(r *http.Request, logg *logger.Logger, storeID int64) context.Context {
	if logg == nil {
		return r.Context()
	}
	return logg.WithStoreID(r.Context(), storeID)
}
