package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

type stubInventoryService struct {
	availability *inventory.AvailabilityResult
	quote        *inventory.PriceQuote
	deduction    *inventory.DeductionResult
	batch        *inventory.BatchResult
	err          error

	calls     int
	lastItems []inventory.BatchItem
}

func (s *stubInventoryService) CheckAvailability(ctx context.Context, storeID int64, barcode string, quantity int) (*inventory.AvailabilityResult, error) {
	s.calls++
	return s.availability, s.err
}

func (s *stubInventoryService) PriceLookup(ctx context.Context, storeID int64, barcode string) (*inventory.PriceQuote, error) {
	s.calls++
	return s.quote, s.err
}

func (s *stubInventoryService) DeductSingle(ctx context.Context, storeID int64, barcode string, quantity int) (*inventory.DeductionResult, error) {
	s.calls++
	return s.deduction, s.err
}

func (s *stubInventoryService) DeductBatch(ctx context.Context, storeID int64, items []inventory.BatchItem) (*inventory.BatchResult, error) {
	s.calls++
	s.lastItems = items
	return s.batch, s.err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error
}

func TestInventoryCheckSuccess(t *testing.T) {
	svc := &stubInventoryService{availability: &inventory.AvailabilityResult{
		StoreID: 1, Barcode: "111", QuantityRequested: 2, QuantityAvailable: 5, Available: true,
	}}
	rec := httptest.NewRecorder()
	InventoryCheck(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/check?storeId=1&barcode=111&quantity=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{
		"storeId":           float64(1),
		"barcode":           "111",
		"quantityRequested": float64(2),
		"quantityAvailable": float64(5),
		"inStock":           true,
	}, body)
}

func TestInventoryCheckRejectsBadQuery(t *testing.T) {
	cases := map[string]string{
		"missing store":     "/inventory/check?barcode=111&quantity=1",
		"zero store":        "/inventory/check?storeId=0&barcode=111&quantity=1",
		"text store":        "/inventory/check?storeId=abc&barcode=111&quantity=1",
		"missing barcode":   "/inventory/check?storeId=1&quantity=1",
		"missing quantity":  "/inventory/check?storeId=1&barcode=111",
		"negative quantity": "/inventory/check?storeId=1&barcode=111&quantity=-2",
	}
	for name, url := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubInventoryService{}
			rec := httptest.NewRecorder()
			InventoryCheck(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, string(pkgerrors.CodeValidation), decodeError(t, rec).Code)
			assert.Zero(t, svc.calls, "service must not be reached")
		})
	}
}

func TestInventoryLookupsRejectOverlongBarcode(t *testing.T) {
	barcode := strings.Repeat("A", 64) + "X"
	cases := []struct {
		name    string
		target  string
		handler func(inventory.Service) http.HandlerFunc
	}{
		{"check", "/inventory/check?storeId=1&quantity=1&barcode=" + barcode, func(svc inventory.Service) http.HandlerFunc { return InventoryCheck(svc, nil) }},
		{"price", "/inventory/price?storeId=1&barcode=" + barcode, func(svc inventory.Service) http.HandlerFunc { return InventoryPrice(svc, nil) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubInventoryService{availability: &inventory.AvailabilityResult{}, quote: &inventory.PriceQuote{}}
			rec := httptest.NewRecorder()
			tc.handler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			apiErr := decodeError(t, rec)
			assert.Equal(t, string(pkgerrors.CodeValidation), apiErr.Code)
			assert.Equal(t, "barcode must be at most 64 characters", apiErr.Message)
			assert.Zero(t, svc.calls, "overlong barcode must not reach the ledger")
		})
	}
}

func TestInventoryCheckNotFound(t *testing.T) {
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Product not found in this store's inventory")}
	rec := httptest.NewRecorder()
	InventoryCheck(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/check?storeId=1&barcode=nope&quantity=1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found in this store's inventory", decodeError(t, rec).Message)
}

func TestInventoryPriceRendersNumbers(t *testing.T) {
	svc := &stubInventoryService{quote: &inventory.PriceQuote{
		StoreID:            2,
		Barcode:            "222",
		Name:               "Cheese",
		OriginalPrice:      decimal.RequireFromString("4.99"),
		DiscountPercentage: decimal.RequireFromString("15"),
		FinalPrice:         decimal.RequireFromString("4.24"),
	}}
	rec := httptest.NewRecorder()
	InventoryPrice(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/price?storeId=2&barcode=222", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4.99, body["originalPrice"])
	assert.Equal(t, float64(15), body["discountPercentage"])
	assert.Equal(t, 4.24, body["finalPrice"])
	assert.Equal(t, "Cheese", body["name"])
}

func TestInventoryDeduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubInventoryService{deduction: &inventory.DeductionResult{StoreID: 1, Barcode: "111", QuantityDeducted: 2, RemainingQuantity: 3}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/deduct", bytes.NewBufferString(`{"storeId":1,"barcode":"111","quantity":2}`))
		InventoryDeduct(svc, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body inventory.DeductionResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.RemainingQuantity)
	})

	t.Run("zero quantity", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/deduct", bytes.NewBufferString(`{"storeId":1,"barcode":"111","quantity":0}`))
		InventoryDeduct(svc, nil).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.calls)
	})

	t.Run("insufficient", func(t *testing.T) {
		svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeInsufficientInventory, "Insufficient inventory").
			WithDetails(map[string]any{"quantityAvailable": 1, "quantityRequested": 4})}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/deduct", bytes.NewBufferString(`{"storeId":1,"barcode":"111","quantity":4}`))
		InventoryDeduct(svc, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, "Insufficient inventory", apiErr.Message)
		details := apiErr.Details.(map[string]any)
		assert.Equal(t, float64(1), details["quantityAvailable"])
		assert.Equal(t, float64(4), details["quantityRequested"])
	})
}

func TestInventoryDeductBatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubInventoryService{batch: &inventory.BatchResult{
			StoreID: 1,
			ItemsDeducted: []inventory.DeductedItem{
				{Barcode: "111", QuantityDeducted: 1, RemainingQuantity: 4},
				{Barcode: "222", QuantityDeducted: 2, RemainingQuantity: 0},
			},
		}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/deduct-batch",
			bytes.NewBufferString(`{"storeId":1,"items":[{"barcode":"111","quantity":1},{"barcode":"222","quantity":2}]}`))
		InventoryDeductBatch(svc, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, svc.lastItems, 2)
		assert.Equal(t, "222", svc.lastItems[1].Barcode)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		items := body["itemsDeducted"].([]any)
		require.Len(t, items, 2)
		assert.Equal(t, float64(0), items[1].(map[string]any)["remainingQuantity"])
	})

	t.Run("malformed item", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/deduct-batch",
			bytes.NewBufferString(`{"storeId":1,"items":[{"barcode":"111","quantity":1},{"barcode":"","quantity":1}]}`))
		InventoryDeductBatch(svc, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.calls)
		assert.Contains(t, decodeError(t, rec).Details, "items[1].barcode")
	})

	t.Run("empty items", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/deduct-batch", bytes.NewBufferString(`{"storeId":1,"items":[]}`))
		InventoryDeductBatch(svc, nil).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure is generic", func(t *testing.T) {
		svc := &stubInventoryService{err: pkgerrors.Wrap(pkgerrors.CodeInternal, context.DeadlineExceeded, "deduct batch item")}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/deduct-batch", bytes.NewBufferString(`{"storeId":1,"items":[{"barcode":"111","quantity":1}]}`))
		InventoryDeductBatch(svc, nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, "internal server error", apiErr.Message)
		assert.Nil(t, apiErr.Details)
	})
}

func TestInventoryHandlersWithoutService(t *testing.T) {
	rec := httptest.NewRecorder()
	InventoryCheck(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/check", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
