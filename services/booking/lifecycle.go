package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookify/database/adapter"
	"bookify/models"
	"bookify/services/catalog"
	"bookify/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking runs the full creation pipeline: resolve the service,
// validate the time interval, check participants, consult the optional
// authorizer and availability checker, detect conflicts against active
// bookings, price, persist, and kick off payment setup and side effects.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*BookingResult, error) {
	if input.ServiceID == "" || input.UserID == "" {
		return nil, NewError(KindInvalidInput, "serviceId and userId are required")
	}

	svc, err := s.Catalog.GetServiceByID(ctx, input.ServiceID)
	if errors.Is(err, catalog.ErrServiceNotFound) {
		return nil, NewError(KindNotFound, MsgServiceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service for booking: %w", err)
	}

	now := s.now()
	if verr := ValidateBookingTime(now, input.StartDate, input.EndDate, svc, s.Rules); verr != nil {
		return nil, verr
	}

	participants := input.Participants
	if participants == 0 {
		participants = 1
	}
	minParticipants := svc.MinParticipants
	if minParticipants == 0 {
		minParticipants = 1
	}
	if participants < minParticipants {
		return nil, Errorf(KindInvalidInput, "Booking requires at least %d participants", minParticipants)
	}
	if svc.MaxParticipants > 0 && participants > svc.MaxParticipants {
		return nil, Errorf(KindInvalidInput, "Booking cannot exceed %d participants", svc.MaxParticipants)
	}

	if s.Authorizer != nil {
		if err := s.Authorizer.Authorize(ctx, input.UserID, svc, input.StartDate, input.EndDate); err != nil {
			return nil, NewError(KindUnauthorized, MsgUnauthorized)
		}
	}

	if s.AvailabilityChecker != nil {
		available, err := s.AvailabilityChecker.CheckAvailability(ctx, svc, input.StartDate, input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("availability check failed: %w", err)
		}
		if !available {
			return nil, NewError(KindServiceUnavailable, MsgServiceUnavailable)
		}
	}

	// Conflict candidates are the service's bookings that still hold their
	// interval: pending and confirmed both count. The check is
	// check-then-act; two concurrent creates for the same interval can both
	// pass it.
	var existing []models.Booking
	err = s.Adapter.FindMany(ctx, BookingModel, []adapter.Where{
		adapter.Eq("serviceId", input.ServiceID),
		adapter.In("status", models.BookingStatusConfirmed, models.BookingStatusPending),
	}, &existing)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for conflict check: %w", err)
	}
	if HasConflict(input.StartDate, input.EndDate, existing) {
		return nil, NewError(KindConflict, MsgConflict)
	}

	// Creation always prices at the service's canonical duration. The
	// tolerance band on the requested interval never discounts or
	// surcharges.
	totalPrice := RoundPrice(CalculateBookingPrice(svc, participants, 0))

	status := models.BookingStatusConfirmed
	if s.Rules.RequireApproval || svc.RequiresApproval {
		status = models.BookingStatusPending
	}

	b := models.Booking{
		ID:           uuid.New().String(),
		ServiceID:    svc.ID,
		UserID:       input.UserID,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       status,
		Participants: participants,
		TotalPrice:   totalPrice,
		Currency:     svc.Currency,
		Notes:        input.Notes,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Metadata:     input.Metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if s.PaymentEnabled {
		b.PaymentStatus = models.PaymentStatusPending
	}

	if err := s.Adapter.Create(ctx, BookingModel, &b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	s.Logger.Info("Booking created",
		zap.String("bookingId", b.ID),
		zap.String("serviceId", b.ServiceID),
		zap.String("userId", b.UserID),
		zap.String("status", b.Status))

	result := &BookingResult{Booking: &b}
	if s.PaymentEnabled && s.Gateway != nil {
		result.Payment = s.setupPayment(ctx, &b, svc)
	}

	s.notifyCreated(ctx, &b)
	if b.Status == models.BookingStatusConfirmed && !s.PaymentEnabled {
		s.notifyConfirmed(ctx, &b)
	}
	return result, nil
}

// setupPayment creates the payment intent for a new booking. It is best
// effort: the booking already exists, so a gateway failure is reported in
// the result instead of failing the creation.
func (s *DefaultBookingService) setupPayment(ctx context.Context, b *models.Booking, svc *models.Service) *models.PaymentSetup {
	intent, err := s.Gateway.CreatePaymentIntent(ctx, b, fmt.Sprintf("Booking for %s", svc.Name))
	if err != nil {
		s.Logger.Error("Payment setup failed", zap.String("bookingId", b.ID), zap.Error(err))
		return &models.PaymentSetup{Error: "Payment setup failed"}
	}

	patch := map[string]any{
		"stripePaymentIntentId": intent.ID,
		"updatedAt":             s.now(),
	}
	if err := s.Adapter.Update(ctx, BookingModel, []adapter.Where{adapter.Eq("id", b.ID)}, patch); err != nil {
		s.Logger.Error("Failed to attach payment intent to booking", zap.String("bookingId", b.ID), zap.Error(err))
	} else {
		b.StripePaymentIntentID = intent.ID
	}
	return &models.PaymentSetup{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
	}
}

// GetBooking fetches a booking owned by the user.
func (s *DefaultBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, NewError(KindUnauthorized, "Unauthorized to view this booking")
	}
	return b, nil
}

// ListBookings returns the user's bookings. Status and service filters are
// pushed down to the adapter; the From/To bounds are applied to StartDate
// inclusively after the fetch.
func (s *DefaultBookingService) ListBookings(ctx context.Context, userID string, filters ListFilters) ([]models.Booking, error) {
	where := []adapter.Where{adapter.Eq("userId", userID)}
	if filters.Status != "" {
		where = append(where, adapter.Eq("status", filters.Status))
	}
	if filters.ServiceID != "" {
		where = append(where, adapter.Eq("serviceId", filters.ServiceID))
	}

	var bookings []models.Booking
	if err := s.Adapter.FindMany(ctx, BookingModel, where, &bookings); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if filters.From == nil && filters.To == nil {
		return bookings, nil
	}

	filtered := bookings[:0]
	for _, b := range bookings {
		if filters.From != nil && b.StartDate.Before(*filters.From) {
			continue
		}
		if filters.To != nil && b.StartDate.After(*filters.To) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered, nil
}

// CancelBooking cancels a booking the user owns, subject to the
// cancellation policy and deadline. The cancellation reason and timestamp
// are merged into the booking metadata.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, userID, bookingID, reason string) (*models.Booking, error) {
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, NewError(KindUnauthorized, "Unauthorized to cancel this booking")
	}
	if b.Status == models.BookingStatusCancelled {
		return nil, NewError(KindAlreadyCancelled, MsgAlreadyCancelled)
	}

	// The service's own cancellation policy tightens the global rules. The
	// lookup bypasses the catalog so deactivating a service does not strand
	// its bookings.
	var policy *models.CancellationPolicy
	var svc models.Service
	found, err := s.Adapter.FindOne(ctx, catalog.ServiceModel, []adapter.Where{adapter.Eq("id", b.ServiceID)}, &svc)
	if err != nil {
		return nil, fmt.Errorf("failed to load service for cancellation: %w", err)
	}
	if found {
		policy = svc.CancellationPolicy
	}

	allowed := s.Rules.AllowCancellation
	if policy != nil {
		allowed = policy.AllowCancellation
	}
	if !allowed {
		return nil, NewError(KindCancellationNotAllowed, MsgCancellationNotAllowed)
	}

	deadlineHours := s.Rules.CancellationDeadlineHours
	if deadlineHours == 0 && policy != nil {
		deadlineHours = policy.CutoffHours
	}
	if deadlineHours > 0 {
		cutoff := b.StartDate.Add(-time.Duration(deadlineHours) * time.Hour)
		if s.now().After(cutoff) {
			return nil, Errorf(KindDeadlinePassed, MsgCancelDeadline, deadlineHours)
		}
	}

	metadata := b.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["cancelledAt"] = s.now().Format(time.RFC3339)
	if reason != "" {
		metadata["cancellationReason"] = reason
	}

	now := s.now()
	patch := map[string]any{
		"status":    models.BookingStatusCancelled,
		"metadata":  metadata,
		"updatedAt": now,
	}
	if err := s.updateBooking(ctx, bookingID, patch); err != nil {
		return nil, err
	}

	b.Status = models.BookingStatusCancelled
	b.Metadata = metadata
	b.UpdatedAt = now

	s.Logger.Info("Booking cancelled", zap.String("bookingId", b.ID), zap.String("userId", userID))
	s.notifyCancelled(ctx, b)
	return b, nil
}

// HandlePaymentEvent applies a verified payment event to its booking.
// Events without a booking reference and ignored event types are dropped.
func (s *DefaultBookingService) HandlePaymentEvent(ctx context.Context, ev *payment.Event) error {
	if ev.Type == payment.EventIgnored {
		return nil
	}
	if ev.BookingID == "" {
		s.Logger.Warn("Payment event without booking reference", zap.String("type", ev.RawType))
		return nil
	}

	b, err := s.findBooking(ctx, ev.BookingID)
	if err != nil {
		return err
	}

	now := s.now()
	switch ev.Type {
	case payment.EventPaymentSucceeded:
		patch := map[string]any{
			"paymentStatus":        models.PaymentStatusPaid,
			"paymentTransactionId": ev.TransactionID,
			"status":               models.BookingStatusConfirmed,
			"updatedAt":            now,
		}
		if err := s.updateBooking(ctx, b.ID, patch); err != nil {
			return err
		}
		b.PaymentStatus = models.PaymentStatusPaid
		b.PaymentTransactionID = ev.TransactionID
		b.Status = models.BookingStatusConfirmed
		s.Logger.Info("Booking payment succeeded", zap.String("bookingId", b.ID))
		s.notifyConfirmed(ctx, b)
		return nil

	case payment.EventPaymentFailed:
		patch := map[string]any{
			"paymentStatus": models.PaymentStatusFailed,
			"status":        models.BookingStatusCancelled,
			"updatedAt":     now,
		}
		if err := s.updateBooking(ctx, b.ID, patch); err != nil {
			return err
		}
		b.PaymentStatus = models.PaymentStatusFailed
		b.Status = models.BookingStatusCancelled
		s.Logger.Warn("Booking payment failed", zap.String("bookingId", b.ID))
		s.notifyCancelled(ctx, b)
		return nil

	case payment.EventRefundProcessed:
		status := models.PaymentStatusPartiallyRefunded
		if ev.RefundAmount >= b.TotalPrice {
			status = models.PaymentStatusRefunded
		}
		patch := map[string]any{
			"paymentStatus": status,
			"updatedAt":     now,
		}
		if err := s.updateBooking(ctx, b.ID, patch); err != nil {
			return err
		}
		s.Logger.Info("Booking refund processed",
			zap.String("bookingId", b.ID),
			zap.String("paymentStatus", status),
			zap.Float64("amount", ev.RefundAmount))
		return nil

	default:
		s.Logger.Debug("Unhandled payment event", zap.String("type", ev.RawType))
		return nil
	}
}

// CreateCheckout opens a hosted checkout session for an unpaid booking the
// user owns.
func (s *DefaultBookingService) CreateCheckout(ctx context.Context, userID, bookingID string, opts payment.CheckoutOptions) (*models.CheckoutSession, error) {
	if !s.PaymentEnabled || s.Gateway == nil {
		return nil, NewError(KindPaymentNotConfigured, MsgStripeNotConfigured)
	}
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, NewError(KindUnauthorized, "Unauthorized to pay for this booking")
	}
	if b.PaymentStatus == models.PaymentStatusPaid {
		return nil, NewError(KindInvalidInput, MsgAlreadyPaid)
	}
	if opts.CustomerEmail == "" {
		opts.CustomerEmail = b.ContactEmail
	}

	session, err := s.Gateway.CreateCheckoutSession(ctx, b, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	patch := map[string]any{
		"stripeCheckoutSessionId": session.ID,
		"updatedAt":               s.now(),
	}
	if err := s.updateBooking(ctx, b.ID, patch); err != nil {
		s.Logger.Error("Failed to attach checkout session to booking", zap.String("bookingId", b.ID), zap.Error(err))
	}
	return session, nil
}

// GetPaymentStatus returns the provider-side status of the booking's
// payment intent.
func (s *DefaultBookingService) GetPaymentStatus(ctx context.Context, userID, bookingID string) (*models.PaymentIntent, error) {
	if !s.PaymentEnabled || s.Gateway == nil {
		return nil, NewError(KindPaymentNotConfigured, MsgStripeNotConfigured)
	}
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, NewError(KindUnauthorized, "Unauthorized to view this booking")
	}
	if b.StripePaymentIntentID == "" {
		return nil, NewError(KindNotFound, MsgNoPaymentFound)
	}

	intent, err := s.Gateway.GetPaymentIntent(ctx, b.StripePaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment status: %w", err)
	}
	return intent, nil
}

// RefundBooking issues a provider refund for a paid booking. Amount 0 means
// a full refund. The payment status transition mirrors the webhook path:
// refunded when the refunded amount covers the total, partially_refunded
// otherwise.
func (s *DefaultBookingService) RefundBooking(ctx context.Context, bookingID string, amount float64, reason string) (*models.Refund, error) {
	if !s.PaymentEnabled || s.Gateway == nil {
		return nil, NewError(KindPaymentNotConfigured, MsgStripeNotConfigured)
	}
	b, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus != models.PaymentStatusPaid && b.PaymentStatus != models.PaymentStatusPartiallyRefunded {
		return nil, NewError(KindPaymentRequired, MsgNotPaid)
	}
	if b.StripePaymentIntentID == "" {
		return nil, NewError(KindNotFound, MsgNoPaymentFound)
	}

	refund, err := s.Gateway.ProcessRefund(ctx, b.StripePaymentIntentID, amount, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to process refund: %w", err)
	}

	status := models.PaymentStatusPartiallyRefunded
	if refund.Amount >= b.TotalPrice {
		status = models.PaymentStatusRefunded
	}
	patch := map[string]any{
		"paymentStatus": status,
		"updatedAt":     s.now(),
	}
	if err := s.updateBooking(ctx, b.ID, patch); err != nil {
		return nil, err
	}
	s.Logger.Info("Booking refunded",
		zap.String("bookingId", b.ID),
		zap.Float64("amount", refund.Amount),
		zap.String("paymentStatus", status))
	return refund, nil
}

func (s *DefaultBookingService) findBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var b models.Booking
	found, err := s.Adapter.FindOne(ctx, BookingModel, []adapter.Where{adapter.Eq("id", bookingID)}, &b)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if !found {
		return nil, NewError(KindNotFound, MsgBookingNotFound)
	}
	return &b, nil
}

func (s *DefaultBookingService) updateBooking(ctx context.Context, bookingID string, patch map[string]any) error {
	err := s.Adapter.Update(ctx, BookingModel, []adapter.Where{adapter.Eq("id", bookingID)}, patch)
	if errors.Is(err, adapter.ErrNotFound) {
		return NewError(KindNotFound, MsgBookingNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}
	return nil
}
