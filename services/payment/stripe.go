package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bookify/models"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway on Stripe. The API key is set globally
// on the stripe package at startup; the webhook secret stays here.
type StripeGateway struct {
	webhookSecret string
	logger        *zap.Logger
}

// NewStripeGateway builds a gateway with the given webhook signing secret.
func NewStripeGateway(webhookSecret string, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{webhookSecret: webhookSecret, logger: logger}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, b *models.Booking, description string) (*models.PaymentIntent, error) {
	if description == "" {
		description = fmt.Sprintf("Payment for booking %s", b.ID)
	}
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(b.TotalPrice)),
		Currency:    stripe.String(strings.ToLower(b.Currency)),
		Description: stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", b.ID)
	params.AddMetadata("serviceId", b.ServiceID)
	params.AddMetadata("userId", b.UserID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(paymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent %s: %w", paymentIntentID, err)
	}
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, b *models.Booking, opts CheckoutOptions) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(opts.SuccessURL),
		CancelURL:  stripe.String(opts.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(b.Currency)),
					UnitAmount: stripe.Int64(int64(b.TotalPrice)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("Booking %s", b.ID)),
						Description: stripe.String(fmt.Sprintf("Service booking for %s", b.ServiceID)),
					},
				},
			},
		},
	}
	params.Context = ctx
	if opts.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(opts.CustomerEmail)
	}
	params.AddMetadata("bookingId", b.ID)
	params.AddMetadata("serviceId", b.ServiceID)
	params.AddMetadata("userId", b.UserID)

	s, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &models.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) ProcessRefund(ctx context.Context, paymentIntentID string, amount float64, reason string) (*models.Refund, error) {
	if reason == "" {
		reason = string(stripe.RefundReasonRequestedByCustomer)
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Reason:        stripe.String(reason),
	}
	params.Context = ctx
	if amount > 0 {
		params.Amount = stripe.Int64(int64(amount))
	}

	r, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to process refund for %s: %w", paymentIntentID, err)
	}
	return &models.Refund{
		ID:     r.ID,
		Amount: float64(r.Amount),
		Status: string(r.Status),
	}, nil
}

// VerifyWebhook validates the Stripe signature and maps the event into the
// provider-agnostic form. The booking ID rides on intent/refund metadata.
func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to parse payment intent event: %w", err)
		}
		out := &Event{
			BookingID:     pi.Metadata["bookingId"],
			TransactionID: pi.ID,
			RawType:       string(event.Type),
		}
		if event.Type == "payment_intent.succeeded" {
			out.Type = EventPaymentSucceeded
		} else {
			out.Type = EventPaymentFailed
		}
		return out, nil

	case "refund.created":
		var r stripe.Refund
		if err := json.Unmarshal(event.Data.Raw, &r); err != nil {
			return nil, fmt.Errorf("failed to parse refund event: %w", err)
		}
		return &Event{
			Type:         EventRefundProcessed,
			BookingID:    r.Metadata["bookingId"],
			RefundAmount: float64(r.Amount),
			RawType:      string(event.Type),
		}, nil

	default:
		g.logger.Debug("Unhandled Stripe event type", zap.String("type", string(event.Type)))
		return &Event{Type: EventIgnored, RawType: string(event.Type)}, nil
	}
}
