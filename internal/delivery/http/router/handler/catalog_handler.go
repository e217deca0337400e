// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boulevard/internal/delivery/http/response"
	"boulevard/internal/domain/repository"
)

// CatalogHandler serves the static product catalog.
type CatalogHandler struct {
	catalog repository.Catalog
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(catalog repository.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts returns every product in catalog order.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.catalog.Products(), "")
}

// ListWeights returns the fixed weight tiers with their multipliers.
func (h *CatalogHandler) ListWeights(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.catalog.WeightTiers(), "")
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
