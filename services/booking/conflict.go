package booking

import (
	"time"

	"bookify/models"
)

// isActiveStatus reports whether a booking still reserves its interval.
// Cancelled and completed bookings never conflict.
func isActiveStatus(status string) bool {
	return status == models.BookingStatusConfirmed || status == models.BookingStatusPending
}

// HasConflict reports whether the candidate [start, end) interval overlaps
// any active booking in existing. The three disjuncts are kept explicit
// rather than collapsed into the half-open overlap test: the strict/
// inclusive mixture at the boundaries is what makes a booking that starts
// exactly when another ends non-conflicting, and tests probe exactly that.
func HasConflict(start, end time.Time, existing []models.Booking) bool {
	for _, b := range existing {
		if !isActiveStatus(b.Status) {
			continue
		}

		// New start falls inside the existing booking.
		startsInside := !start.Before(b.StartDate) && start.Before(b.EndDate)
		// New end falls inside the existing booking.
		endsInside := end.After(b.StartDate) && !end.After(b.EndDate)
		// New interval fully contains the existing booking.
		contains := !start.After(b.StartDate) && !end.Before(b.EndDate)

		if startsInside || endsInside || contains {
			return true
		}
	}
	return false
}
