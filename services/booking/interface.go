package booking

import (
	"context"
	"time"

	"bookify/database/adapter"
	"bookify/models"
	"bookify/services/catalog"
	"bookify/services/payment"

	"go.uber.org/zap"
)

// BookingModel is the adapter model name for bookings.
const BookingModel = "bookings"

// Authorizer decides whether a user may book a service. A nil Authorizer
// allows everyone.
type Authorizer interface {
	Authorize(ctx context.Context, userID string, svc *models.Service, start, end time.Time) error
}

// AvailabilityChecker is an external availability source consulted before
// conflict detection, e.g. staff rosters or an external calendar. A nil
// checker means always available.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, svc *models.Service, start, end time.Time) (bool, error)
}

// LifecycleObserver receives booking lifecycle callbacks. Errors are logged
// and never fail the triggering operation.
type LifecycleObserver interface {
	OnBookingCreated(ctx context.Context, b *models.Booking) error
	OnBookingConfirmed(ctx context.Context, b *models.Booking) error
	OnBookingCancelled(ctx context.Context, b *models.Booking) error
}

// Notifier delivers booking notices and schedules reminders. Failures are
// logged and swallowed.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, b *models.Booking) error
	SendBookingCancellation(ctx context.Context, b *models.Booking) error
	ScheduleReminder(ctx context.Context, b *models.Booking) error
}

// CreateBookingInput is the request to book a service.
type CreateBookingInput struct {
	ServiceID    string
	UserID       string
	StartDate    time.Time
	EndDate      time.Time
	Participants int
	Notes        string
	ContactEmail string
	ContactPhone string
	Metadata     map[string]any
}

// BookingResult pairs a created booking with the outcome of payment setup.
// Payment is nil when payment processing is disabled.
type BookingResult struct {
	Booking *models.Booking      `json:"booking"`
	Payment *models.PaymentSetup `json:"payment,omitempty"`
}

// ListFilters narrow a booking listing. From/To bound StartDate inclusively.
type ListFilters struct {
	Status    string
	ServiceID string
	From      *time.Time
	To        *time.Time
}

// BookingService is the booking lifecycle manager.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*BookingResult, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, userID string, filters ListFilters) ([]models.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID, reason string) (*models.Booking, error)

	HandlePaymentEvent(ctx context.Context, ev *payment.Event) error
	CreateCheckout(ctx context.Context, userID, bookingID string, opts payment.CheckoutOptions) (*models.CheckoutSession, error)
	GetPaymentStatus(ctx context.Context, userID, bookingID string) (*models.PaymentIntent, error)
	RefundBooking(ctx context.Context, bookingID string, amount float64, reason string) (*models.Refund, error)
}

// DefaultBookingService implements BookingService. Gateway, Notifier and the
// strategy fields are optional; Adapter, Catalog and Logger are required.
type DefaultBookingService struct {
	Adapter adapter.Adapter
	Catalog catalog.CatalogService
	Gateway payment.Gateway

	Notifier Notifier
	Observer LifecycleObserver

	Authorizer          Authorizer
	AvailabilityChecker AvailabilityChecker

	Rules          Rules
	PaymentEnabled bool

	Logger *zap.Logger

	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
