package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keebstore/storefront/internal/catalog"
)

// GetProductsHandler godoc
// @Summary List products
// @Description Filters by category and sorts the loaded catalog
// @Tags products
// @Produce json
// @Param category query string false "Category, or all" default(all)
// @Param sort query string false "newest, price-low, price-high or name" default(newest)
// @Success 200 {object} ProductsSearchResult
// @Failure 503 {object} ErrorResponse
// @Router /api/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	if storeCatalog.Store().Err() != nil {
		writeError(w, r, http.StatusServiceUnavailable, catalog.MsgLoadFailed)
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.FilterAll
	}
	key := catalog.ParseSortKey(r.URL.Query().Get("sort"))

	products := storeCatalog.Query(category, key)
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p, storeCatalog.Formatter())
	}

	writeJSON(w, http.StatusOK, ProductsSearchResult{
		Data: response,
		Meta: Meta{TotalCount: len(response), Category: category, Sort: string(key)},
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, ok := storeCatalog.Store().Lookup(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product, storeCatalog.Formatter()))
}
