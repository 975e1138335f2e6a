package booking

import (
	"math"
	"time"

	"bookify/models"
)

// Rules hold the deployment-wide booking restrictions. Per-service values
// (bookingWindow, cancellationPolicy) fill in whichever bound a rule leaves
// unset.
type Rules struct {
	MinAdvanceTime            int // minutes; 0 = no restriction
	MaxAdvanceDays            int // 0 = no restriction
	AllowCancellation         bool
	CancellationDeadlineHours int // 0 = no deadline
	RequireApproval           bool
	// TimeZone is the location used to resolve a booking start into a
	// day-of-week and clock time for the slot check. Nil means the start
	// time's own location.
	TimeZone *time.Location
}

// durationToleranceMinutes is the inclusive band around a service's
// canonical duration within which a booking interval is accepted.
const durationToleranceMinutes = 5

// ValidateBookingTime decides whether the [start, end) interval is bookable
// for the service. Checks run in a fixed order and stop at the first
// failure; callers depend on which message they see, so the order must not
// change.
func ValidateBookingTime(now, start, end time.Time, svc *models.Service, rules Rules) *Error {
	// A booking cannot start in the past; starting exactly now is rejected too.
	if !start.After(now) {
		return NewError(KindInvalidTime, MsgBookingInPast)
	}

	minAdvance := rules.MinAdvanceTime
	if minAdvance == 0 && svc.BookingWindow != nil {
		minAdvance = svc.BookingWindow.MinAdvanceHours * 60
	}
	if minAdvance > 0 {
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return Errorf(KindInvalidTime, MsgMinAdvance, minAdvance)
		}
	}

	maxDays := rules.MaxAdvanceDays
	if maxDays == 0 && svc.BookingWindow != nil {
		maxDays = svc.BookingWindow.MaxAdvanceDays
	}
	if maxDays > 0 {
		if start.After(now.Add(time.Duration(maxDays) * 24 * time.Hour)) {
			return Errorf(KindInvalidTime, MsgMaxAdvance, maxDays)
		}
	}

	if !end.After(start) {
		return NewError(KindInvalidTime, MsgEndBeforeStart)
	}

	bookingMinutes := end.Sub(start).Minutes()
	if math.Abs(bookingMinutes-float64(svc.Duration)) > durationToleranceMinutes {
		return Errorf(KindInvalidTime, MsgDurationMismatch, svc.Duration)
	}

	if !isTimeSlotAvailable(svc, start, rules.TimeZone) {
		return NewError(KindInvalidTime, MsgSlotUnavailable)
	}

	return nil
}

// isTimeSlotAvailable checks the start moment against the service's weekly
// slots. An empty slot set means no restriction. Both slot boundaries are
// inclusive, so a booking may start exactly at a slot's end time. Only the
// start moment is checked; the end is never validated against slots.
func isTimeSlotAvailable(svc *models.Service, start time.Time, loc *time.Location) bool {
	if len(svc.AvailableSlots) == 0 {
		return true
	}

	local := start
	if loc != nil {
		local = start.In(loc)
	}
	dayOfWeek := int(local.Weekday())
	clock := local.Format("15:04")

	for _, slot := range svc.AvailableSlots {
		if slot.DayOfWeek != dayOfWeek {
			continue
		}
		if slot.StartTime <= clock && clock <= slot.EndTime {
			return true
		}
	}
	return false
}
