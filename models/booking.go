package models

import "time"

// Booking status values. Completed and no-show are terminal classifications
// set by operational processes outside this service; rescheduled and
// waitlisted are reserved.
const (
	BookingStatusPending     = "pending"
	BookingStatusConfirmed   = "confirmed"
	BookingStatusCancelled   = "cancelled"
	BookingStatusCompleted   = "completed"
	BookingStatusNoShow      = "no-show"
	BookingStatusRescheduled = "rescheduled"
	BookingStatusWaitlisted  = "waitlisted"
)

// Payment status values.
const (
	PaymentStatusPending           = "pending"
	PaymentStatusPaid              = "paid"
	PaymentStatusFailed            = "failed"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

// Booking is a reservation of a service for a user over a time interval.
// EndDate > StartDate holds for every valid booking. A booking is owned by
// the user who created it for cancel/view purposes, but is visible to
// conflict detection for its service regardless of owner.
type Booking struct {
	ID        string `bson:"id" json:"id"`
	ServiceID string `bson:"serviceId" json:"serviceId"`
	UserID    string `bson:"userId" json:"userId"`

	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`

	Status       string  `bson:"status" json:"status"`
	Participants int     `bson:"participants" json:"participants"`
	TotalPrice   float64 `bson:"totalPrice" json:"totalPrice"` // smallest currency unit, set once at creation
	Currency     string  `bson:"currency" json:"currency"`

	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`
	ContactEmail string `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone string `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`

	// PaymentStatus is set only when payment processing is enabled.
	PaymentStatus           string `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	PaymentTransactionID    string `bson:"paymentTransactionId,omitempty" json:"paymentTransactionId,omitempty"`
	StripePaymentIntentID   string `bson:"stripePaymentIntentId,omitempty" json:"stripePaymentIntentId,omitempty"`
	StripeCheckoutSessionID string `bson:"stripeCheckoutSessionId,omitempty" json:"stripeCheckoutSessionId,omitempty"`

	// Metadata is an opaque blob. The service only ever merges into it; the
	// cancellation path writes cancellationReason and cancelledAt audit keys.
	Metadata map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReminderPayload is the asynq task payload for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	ServiceID string `json:"serviceId"`
	FireDate  string `json:"fireDate"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
