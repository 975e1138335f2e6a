package handlers

import (
	"net/http"
	"time"

	"bookify/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// statusForError maps tagged booking errors onto HTTP statuses. Untagged
// errors are internal.
func statusForError(err error) (int, string) {
	be, ok := booking.AsError(err)
	if !ok {
		return http.StatusInternalServerError, "Internal server error"
	}
	switch be.Kind {
	case booking.KindNotFound:
		return http.StatusNotFound, be.Message
	case booking.KindConflict:
		return http.StatusConflict, be.Message
	case booking.KindUnauthorized:
		return http.StatusUnauthorized, be.Message
	case booking.KindInternal:
		return http.StatusInternalServerError, be.Message
	default:
		return http.StatusBadRequest, be.Message
	}
}

func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status, msg := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(op+" failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}

// CreateBooking handles POST /api/booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var body struct {
		ServiceID    string         `json:"serviceId" binding:"required"`
		StartDate    time.Time      `json:"startDate" binding:"required"`
		EndDate      time.Time      `json:"endDate" binding:"required"`
		Participants int            `json:"participants"`
		Notes        string         `json:"notes"`
		ContactEmail string         `json:"contactEmail"`
		ContactPhone string         `json:"contactPhone"`
		Metadata     map[string]any `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	userID := c.GetString("userID")
	result, err := h.Svc.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		ServiceID:    body.ServiceID,
		UserID:       userID,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Participants: body.Participants,
		Notes:        body.Notes,
		ContactEmail: body.ContactEmail,
		ContactPhone: body.ContactPhone,
		Metadata:     body.Metadata,
	})
	if err != nil {
		respondError(c, h.Logger, "CreateBooking", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListBookings handles GET /api/booking.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filters := booking.ListFilters{
		Status:    c.Query("status"),
		ServiceID: c.Query("serviceId"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date, expected RFC3339"})
			return
		}
		filters.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date, expected RFC3339"})
			return
		}
		filters.To = &t
	}

	userID := c.GetString("userID")
	bookings, err := h.Svc.ListBookings(c.Request.Context(), userID, filters)
	if err != nil {
		respondError(c, h.Logger, "ListBookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking handles GET /api/booking/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID := c.GetString("userID")
	b, err := h.Svc.GetBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetBooking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /api/booking/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	// The body is optional; a bare cancel carries no reason.
	_ = c.ShouldBindJSON(&body)

	userID := c.GetString("userID")
	b, err := h.Svc.CancelBooking(c.Request.Context(), userID, c.Param("id"), body.Reason)
	if err != nil {
		respondError(c, h.Logger, "CancelBooking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
