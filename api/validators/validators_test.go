package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type lineItem struct {
	Barcode  string `json:"barcode" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type cartBody struct {
	StoreID int64      `json:"storeId" validate:"required,gt=0"`
	Items   []lineItem `json:"items" validate:"required,min=1,dive"`
}

func TestDecodeJSONBodyReportsNestedPaths(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"storeId":1,"items":[{"barcode":"a","quantity":1},{"barcode":"b","quantity":0}]}`))
	var body cartBody
	err := DecodeJSONBody(req, &body)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]string)
	assert.Equal(t, "must be greater than 0", details["items[1].quantity"])
}

func TestDecodeJSONBodyRejectsUnknownAndMalformed(t *testing.T) {
	var body cartBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"storeId":1,"items":[],"coupon":"x"}`))
	assert.True(t, pkgerrors.Is(DecodeJSONBody(req, &body), pkgerrors.CodeValidation))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"storeId":`))
	assert.True(t, pkgerrors.Is(DecodeJSONBody(req, &body), pkgerrors.CodeValidation))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"storeId":1,"items":[]}`))
	err := DecodeJSONBody(req, &body)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Contains(t, pkgerrors.As(err).Details(), "items")
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?storeId=7&barcode=%20abc%20&primary=Produce,,%20Dairy%20&bad=x&neg=-1", nil)

	id, err := RequireQueryInt(req, "storeId", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = RequireQueryInt(req, "missing", 1)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	_, err = RequireQueryInt(req, "bad", 1)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	_, err = RequireQueryInt(req, "neg", 0)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	barcode, err := RequireQueryString(req, "barcode", 64)
	require.NoError(t, err)
	assert.Equal(t, "abc", barcode)

	assert.Equal(t, []string{"Produce", "Dairy"}, QueryList(req, "primary"))
	assert.Nil(t, QueryList(req, "secondary"))
}

func TestRequireQueryStringRejectsOverlongValues(t *testing.T) {
	exact := strings.Repeat("A", 64)
	req := httptest.NewRequest(http.MethodGet, "/?barcode="+exact, nil)
	value, err := RequireQueryString(req, "barcode", 64)
	require.NoError(t, err)
	assert.Equal(t, exact, value)

	req = httptest.NewRequest(http.MethodGet, "/?barcode="+exact+"XYZ", nil)
	_, err = RequireQueryString(req, "barcode", 64)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Equal(t, "barcode must be at most 64 characters", pkgerrors.As(err).Message())

	// Multi-byte characters count once each.
	req = httptest.NewRequest(http.MethodGet, "/?barcode="+strings.Repeat("%C3%A9", 64), nil)
	value, err = RequireQueryString(req, "barcode", 64)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 64), value)
}
