package handlers

import (
	"net/http"

	"bookify/services/booking"
	"bookify/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves the payment endpoints: hosted checkout, payment
// status, refunds, and the provider webhook.
type PaymentHandler struct {
	Svc     booking.BookingService
	Gateway payment.Gateway
	Logger  *zap.Logger
}

func NewPaymentHandler(svc booking.BookingService, gateway payment.Gateway, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Gateway: gateway, Logger: logger}
}

// StripeWebhook handles POST /api/booking/stripe/webhook. The raw body is
// required for signature verification, so no binding happens here.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	if h.Gateway == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stripe not configured"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
		return
	}

	ev, err := h.Gateway.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.Logger.Warn("Webhook verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
		return
	}

	if err := h.Svc.HandlePaymentEvent(c.Request.Context(), ev); err != nil {
		h.Logger.Error("Failed to apply payment event",
			zap.String("type", ev.RawType),
			zap.String("bookingId", ev.BookingID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// CreateCheckout handles POST /api/booking/checkout.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var body struct {
		BookingID     string `json:"bookingId" binding:"required"`
		SuccessURL    string `json:"successUrl" binding:"required"`
		CancelURL     string `json:"cancelUrl" binding:"required"`
		CustomerEmail string `json:"customerEmail"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	userID := c.GetString("userID")
	session, err := h.Svc.CreateCheckout(c.Request.Context(), userID, body.BookingID, payment.CheckoutOptions{
		SuccessURL:    body.SuccessURL,
		CancelURL:     body.CancelURL,
		CustomerEmail: body.CustomerEmail,
	})
	if err != nil {
		respondError(c, h.Logger, "CreateCheckout", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetPaymentStatus handles GET /api/booking/payment/status/:id.
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	userID := c.GetString("userID")
	intent, err := h.Svc.GetPaymentStatus(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetPaymentStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"paymentIntentId": intent.ID,
		"status":          intent.Status,
	})
}

// RefundBooking handles POST /api/booking/admin/refund.
func (h *PaymentHandler) RefundBooking(c *gin.Context) {
	var body struct {
		BookingID string  `json:"bookingId" binding:"required"`
		Amount    float64 `json:"amount"`
		Reason    string  `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	refund, err := h.Svc.RefundBooking(c.Request.Context(), body.BookingID, body.Amount, body.Reason)
	if err != nil {
		respondError(c, h.Logger, "RefundBooking", err)
		return
	}
	c.JSON(http.StatusOK, refund)
}
