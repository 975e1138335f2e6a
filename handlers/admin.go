package handlers

import (
	"errors"
	"net/http"

	"bookify/models"
	"bookify/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin service-management endpoints.
type AdminHandler struct {
	Catalog catalog.CatalogService
	Logger  *zap.Logger
}

func NewAdminHandler(cat catalog.CatalogService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Catalog: cat, Logger: logger}
}

// CreateService handles POST /api/booking/admin/services.
func (h *AdminHandler) CreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Catalog.CreateService(c.Request.Context(), svc)
	if err != nil {
		h.Logger.Error("CreateService failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateService handles PATCH /api/booking/admin/services/:id.
func (h *AdminHandler) UpdateService(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	delete(patch, "id")

	updated, err := h.Catalog.UpdateService(c.Request.Context(), c.Param("id"), patch)
	if errors.Is(err, catalog.ErrServiceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if err != nil {
		h.Logger.Error("UpdateService failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update service"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteService handles DELETE /api/booking/admin/services/:id.
func (h *AdminHandler) DeleteService(c *gin.Context) {
	err := h.Catalog.DeleteService(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrServiceHasBookings) {
		c.JSON(http.StatusConflict, gin.H{"error": "Service has confirmed bookings and cannot be deleted"})
		return
	}
	if err != nil {
		h.Logger.Error("DeleteService failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
