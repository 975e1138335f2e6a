package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bookify/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServicesHandler serves the public service catalog endpoints.
type ServicesHandler struct {
	Catalog catalog.CatalogService
	Logger  *zap.Logger
}

func NewServicesHandler(cat catalog.CatalogService, logger *zap.Logger) *ServicesHandler {
	return &ServicesHandler{Catalog: cat, Logger: logger}
}

// GetServices handles GET /api/booking/services.
func (h *ServicesHandler) GetServices(c *gin.Context) {
	filters := catalog.ServiceFilters{
		Category: c.Query("category"),
		Type:     c.Query("type"),
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'active' value"})
			return
		}
		filters.Active = &active
	}

	services, err := h.Catalog.GetServices(c.Request.Context(), filters)
	if err != nil {
		h.Logger.Error("GetServices: failed to fetch services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GetServiceByID handles GET /api/booking/services/:id.
func (h *ServicesHandler) GetServiceByID(c *gin.Context) {
	svc, err := h.Catalog.GetServiceByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrServiceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if err != nil {
		h.Logger.Error("GetServiceByID: failed to fetch service", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch service"})
		return
	}
	c.JSON(http.StatusOK, svc)
}
