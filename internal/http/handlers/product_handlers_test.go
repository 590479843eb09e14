package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keebstore/storefront/internal/catalog"
	handler "github.com/keebstore/storefront/internal/http/handlers"
)

func TestGetProductsHandler(t *testing.T) {
	sf := newStorefront(t, nil, nil)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"default newest", "/api/products", []string{"b", "a", "k1", "k2"}},
		{"switches by price", "/api/products?category=switches&sort=price-low", []string{"a", "b"}},
		{"price high", "/api/products?sort=price-high", []string{"k1", "k2", "b", "a"}},
		{"empty category", "/api/products?category=stabilizers", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, sf.handler, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var resp handler.ProductsSearchResult
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			ids := []string{}
			for _, p := range resp.Data {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), resp.Meta.TotalCount)
		})
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	sf := newStorefront(t, nil, nil)

	w := doJSON(t, sf.handler, http.MethodGet, "/api/products/k2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p handler.ProductResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	assert.Equal(t, "Tofu60", p.Name)
	assert.Equal(t, "Rp\u00a01.200.000", p.PriceLabel)
	assert.True(t, p.SoldOut)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 0, *p.Stock)

	w = doJSON(t, sf.handler, http.MethodGet, "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCatalogSummaryHandler(t *testing.T) {
	sf := newStorefront(t, nil, nil)
	w := doJSON(t, sf.handler, http.MethodGet, "/api/catalog/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var s catalog.Summary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, 4, s.TotalProducts)
	assert.Equal(t, 2, s.FeaturedCount)
	assert.Equal(t, 1, s.SoldOutCount)
	assert.False(t, s.LoadFailed)
	assert.Equal(t, []catalog.CategorySummary{
		{Category: "keycaps", Count: 1},
		{Category: "keyboards", Count: 1},
		{Category: "switches", Count: 2},
		{Category: "stabilizers", Count: 0},
	}, s.Categories)
}

func validOrderRequest() handler.OrderRequest {
	return handler.OrderRequest{
		ProductID:       "b",
		Quantity:        3,
		CustomerName:    "Dita",
		CustomerEmail:   "dita@example.com",
		CustomerPhone:   "0812345",
		CustomerAddress: "Jl. Merdeka 1",
	}
}

func TestCreateOrderHandler_Valid(t *testing.T) {
	sf := newStorefront(t, nil, nil)

	w := doJSON(t, sf.handler, http.MethodPost, "/api/orders", validOrderRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.OrderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(135000), resp.TotalPrice)
	assert.Equal(t, "Rp\u00a0135.000", resp.TotalLabel)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "table", resp.Channel)
	assert.Empty(t, resp.RedirectURL)

	orders := sf.orders.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, int64(135000), orders[0].TotalPrice)
}

func TestCreateOrderHandler_DeepLink(t *testing.T) {
	sf := newStorefront(t, nil, deepLinkChannel)

	w := doJSON(t, sf.handler, http.MethodPost, "/api/orders", validOrderRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp handler.OrderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, strings.HasPrefix(resp.RedirectURL, waBase+"?text="))
	assert.Equal(t, "deeplink", resp.Channel)
}

func TestCreateOrderHandler_Invalid(t *testing.T) {
	sf := newStorefront(t, nil, nil)

	tests := []struct {
		name           string
		mutate         func(*handler.OrderRequest)
		expectCode     int
		expectedFields []string
	}{
		{"missing product and quantity", func(r *handler.OrderRequest) {
			r.ProductID = ""
			r.Quantity = 0
		}, http.StatusBadRequest, []string{"product_id", "quantity"}},
		{"quantity above maximum", func(r *handler.OrderRequest) {
			r.Quantity = 300000000000000
		}, http.StatusBadRequest, []string{"quantity"}},
		{"missing customer fields", func(r *handler.OrderRequest) {
			r.CustomerName = ""
			r.CustomerAddress = ""
		}, http.StatusBadRequest, []string{"customer_name", "customer_address"}},
		{"unknown product", func(r *handler.OrderRequest) { r.ProductID = "zz" }, http.StatusNotFound, nil},
		{"sold out", func(r *handler.OrderRequest) { r.ProductID = "k2" }, http.StatusConflict, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOrderRequest()
			tt.mutate(&req)
			w := doJSON(t, sf.handler, http.MethodPost, "/api/orders", req)
			require.Equal(t, tt.expectCode, w.Code)

			if tt.expectedFields != nil {
				var resp handler.ValidationErrorsResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				fields := []string{}
				for _, e := range resp.Errors {
					fields = append(fields, e.Field)
				}
				assert.Equal(t, tt.expectedFields, fields)
			}
		})
	}
	assert.Empty(t, sf.orders.Orders())
}

func TestCreateOrderHandler_BadJSON(t *testing.T) {
	sf := newStorefront(t, nil, nil)
	w := doJSON(t, sf.handler, http.MethodPost, "/api/orders", map[string]any{"product_id": "b", "total_price": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown fields such as a client total are rejected")
}

func TestCreateOrderHandler_ChannelFailure(t *testing.T) {
	sf := newStorefront(t, nil, nil)
	sf.orders.FailWith(errors.New("timeout"))

	w := doJSON(t, sf.handler, http.MethodPost, "/api/orders", validOrderRequest())
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, handler.MsgOrderFailed, resp.Error)
}
