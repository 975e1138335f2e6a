package booking

import (
	"errors"
	"fmt"
)

// Kind classifies a booking failure. The set is closed; handlers map kinds
// to transport status codes.
type Kind string

const (
	KindNotFound               Kind = "notFound"
	KindInvalidInput           Kind = "invalidInput"
	KindInvalidTime            Kind = "invalidTime"
	KindConflict               Kind = "conflict"
	KindUnauthorized           Kind = "unauthorized"
	KindAlreadyCancelled       Kind = "alreadyCancelled"
	KindCancellationNotAllowed Kind = "cancellationNotAllowed"
	KindDeadlinePassed         Kind = "deadlinePassed"
	KindPaymentRequired        Kind = "paymentRequired"
	KindPaymentNotConfigured   Kind = "paymentNotConfigured"
	KindServiceUnavailable     Kind = "serviceUnavailable"
	KindInternal               Kind = "internal"
)

// Error is a tagged booking failure with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a tagged booking error.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf builds a tagged booking error from a format string.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsError unwraps err into a *Error when possible.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// Fixed message templates. The wording is part of the API surface and is
// pinned by tests; validator messages are produced in check order.
const (
	MsgServiceNotFound        = "Service not found"
	MsgBookingNotFound        = "Booking not found"
	MsgBookingInPast          = "Booking cannot be in the past"
	MsgMinAdvance             = "Booking must be at least %d minutes in advance"
	MsgMaxAdvance             = "Booking cannot be more than %d days in advance"
	MsgEndBeforeStart         = "End date must be after start date"
	MsgDurationMismatch       = "Booking duration must be %d minutes"
	MsgSlotUnavailable        = "Selected time slot is not available for this service"
	MsgConflict               = "Booking time conflicts with existing booking"
	MsgUnauthorized           = "Unauthorized to make this booking"
	MsgAlreadyCancelled       = "Booking is already cancelled"
	MsgCancellationNotAllowed = "Cancellation not allowed"
	MsgCancelDeadline         = "Cancellation must be made at least %d hours in advance"
	MsgServiceUnavailable     = "Service is not available at the requested time"
	MsgStripeNotConfigured    = "Stripe not configured"
	MsgAlreadyPaid            = "Booking already paid"
	MsgNotPaid                = "Booking has not been paid"
	MsgNoPaymentFound         = "No payment found for this booking"
)
