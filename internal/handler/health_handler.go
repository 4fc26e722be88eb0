package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orderintake/internal/port"
)

// HealthHandler handles liveness and readiness endpoints.
type HealthHandler struct {
	catalog port.CatalogLookup
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(catalog port.CatalogLookup) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// Healthz handles GET /healthz.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz handles GET /readyz. The service is ready once a catalog
// snapshot can be served.
func (h *HealthHandler) Readyz(c *gin.Context) {
	snap, err := h.catalog.Snapshot(c.Request.Context())
	if err != nil || snap.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "catalog_products": snap.Len()})
}
