package booking

import (
	"math"

	"bookify/models"
)

// CalculateBookingPrice computes the total for a booking:
// base price x participants x (duration / canonical duration).
// durationMinutes of 0 means the service's own duration, making the ratio 1
// in the common case. The raw product is returned unrounded; callers that
// persist it use RoundPrice so stored amounts are whole minor units.
func CalculateBookingPrice(svc *models.Service, participants int, durationMinutes int) float64 {
	base := durationMinutes
	if base == 0 {
		base = svc.Duration
	}
	return svc.Price * float64(participants) * (float64(base) / float64(svc.Duration))
}

// RoundPrice rounds a computed amount half away from zero to a whole number
// of minor currency units.
func RoundPrice(amount float64) float64 {
	return math.Round(amount)
}
