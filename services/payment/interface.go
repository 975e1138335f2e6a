package payment

import (
	"context"

	"bookify/models"
)

// Event types surfaced to the booking service by webhook dispatch.
const (
	EventPaymentSucceeded = "payment_succeeded"
	EventPaymentFailed    = "payment_failed"
	EventRefundProcessed  = "refund_processed"
	EventIgnored          = "ignored"
)

// Event is a provider-agnostic payment notification tied to a booking.
type Event struct {
	Type          string
	BookingID     string
	TransactionID string
	RefundAmount  float64
	RawType       string
}

// CheckoutOptions configure a hosted checkout session.
type CheckoutOptions struct {
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

// Gateway is the payment-provider collaborator consumed by the booking
// service. The booking core only tracks payment status transitions; how
// they are obtained is the gateway's concern.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, b *models.Booking, description string) (*models.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*models.PaymentIntent, error)
	CreateCheckoutSession(ctx context.Context, b *models.Booking, opts CheckoutOptions) (*models.CheckoutSession, error)
	ProcessRefund(ctx context.Context, paymentIntentID string, amount float64, reason string) (*models.Refund, error)
	// VerifyWebhook checks the signature on a raw webhook body and parses it
	// into an Event. Unrecognized event types come back as EventIgnored.
	VerifyWebhook(payload []byte, signature string) (*Event, error)
}
