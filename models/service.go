package models

import "time"

// AvailableSlot is a recurring weekly window during which a service may be
// started. Times are local clock times in "HH:mm" 24-hour form.
type AvailableSlot struct {
	DayOfWeek int    `bson:"dayOfWeek" json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// BookingWindow restricts how far in advance a service can be booked.
type BookingWindow struct {
	MinAdvanceHours int `bson:"minAdvanceHours,omitempty" json:"minAdvanceHours,omitempty"`
	MaxAdvanceDays  int `bson:"maxAdvanceDays,omitempty" json:"maxAdvanceDays,omitempty"`
}

// CancellationPolicy describes whether and until when a booking against the
// service may be cancelled, and how refunds are handled.
type CancellationPolicy struct {
	AllowCancellation bool   `bson:"allowCancellation" json:"allowCancellation"`
	CutoffHours       int    `bson:"cutoffHours,omitempty" json:"cutoffHours,omitempty"`
	RefundPolicy      string `bson:"refundPolicy,omitempty" json:"refundPolicy,omitempty"` // "full", "partial", "none"
	RefundPercentage  int    `bson:"refundPercentage,omitempty" json:"refundPercentage,omitempty"`
}

// SpecialAvailability overrides the regular weekly slots for a single date.
type SpecialAvailability struct {
	Date  string        `bson:"date" json:"date"` // YYYY-MM-DD
	Slots []SpecialSlot `bson:"slots" json:"slots"`
}

// SpecialSlot is a one-off window; Available=false blocks the window.
type SpecialSlot struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Available bool   `bson:"available" json:"available"`
}

// Location describes where a service takes place.
type Location struct {
	Type        string `bson:"type" json:"type"` // "physical", "virtual", "hybrid"
	Address     string `bson:"address,omitempty" json:"address,omitempty"`
	Room        string `bson:"room,omitempty" json:"room,omitempty"`
	VirtualLink string `bson:"virtualLink,omitempty" json:"virtualLink,omitempty"`
}

// PricingTier is a conditional price variation. Tiers are stored as
// reference data; no decision logic evaluates them.
type PricingTier struct {
	Name        string  `bson:"name" json:"name"`
	Condition   string  `bson:"condition" json:"condition"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// Service is a bookable offering. Its Duration is the canonical expected
// length of any booking against it; conflict and validity checks are always
// computed relative to it.
type Service struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// Scheduling rules.
	Duration           int                   `bson:"duration" json:"duration"` // minutes, > 0
	AvailableSlots     []AvailableSlot       `bson:"availableSlots,omitempty" json:"availableSlots,omitempty"`
	BookingWindow      *BookingWindow        `bson:"bookingWindow,omitempty" json:"bookingWindow,omitempty"`
	CancellationPolicy *CancellationPolicy   `bson:"cancellationPolicy,omitempty" json:"cancellationPolicy,omitempty"`
	Special            []SpecialAvailability `bson:"specialAvailability,omitempty" json:"specialAvailability,omitempty"`

	// Commercial.
	Price    float64 `bson:"price" json:"price"` // smallest currency unit
	Currency string  `bson:"currency" json:"currency"`

	// Capacity.
	MaxParticipants int `bson:"maxParticipants,omitempty" json:"maxParticipants,omitempty"`
	MinParticipants int `bson:"minParticipants,omitempty" json:"minParticipants,omitempty"`

	Category string `bson:"category,omitempty" json:"category,omitempty"`
	Type     string `bson:"type,omitempty" json:"type,omitempty"` // appointment, event, rental, course, table, room

	RequiresApproval bool `bson:"requiresApproval,omitempty" json:"requiresApproval,omitempty"`
	IsActive         bool `bson:"isActive" json:"isActive"`

	Location     *Location      `bson:"location,omitempty" json:"location,omitempty"`
	PricingTiers []PricingTier  `bson:"pricingTiers,omitempty" json:"pricingTiers,omitempty"`
	Metadata     map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
