package handlers

import (
	"net/http"
)

// GetCatalogSummaryHandler godoc
// @Summary Catalog summary
// @Description Product counts per category plus featured and sold out totals
// @Tags catalog
// @Produce json
// @Success 200 {object} catalog.Summary
// @Router /api/catalog/summary [get]
func GetCatalogSummaryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, storeCatalog.Summary())
}
