package booking

import (
	"testing"

	"bookify/models"
)

func TestPriceScalesWithParticipants(t *testing.T) {
	svc := &models.Service{Duration: 60, Price: 5000}

	single := CalculateBookingPrice(svc, 1, 60)
	if single != 5000 {
		t.Fatalf("expected base price 5000, got %v", single)
	}
	for n := 2; n <= 5; n++ {
		got := CalculateBookingPrice(svc, n, 60)
		if got != single*float64(n) {
			t.Fatalf("expected price for %d participants to be %v, got %v", n, single*float64(n), got)
		}
	}
}

func TestPriceScalesWithDuration(t *testing.T) {
	svc := &models.Service{Duration: 60, Price: 5000}

	if got := CalculateBookingPrice(svc, 1, 120); got != 10000 {
		t.Fatalf("expected double duration to double the price, got %v", got)
	}
	if got := CalculateBookingPrice(svc, 1, 30); got != 2500 {
		t.Fatalf("expected half duration to halve the price, got %v", got)
	}
}

func TestPriceZeroDurationDefaultsToService(t *testing.T) {
	svc := &models.Service{Duration: 90, Price: 3000}
	if got := CalculateBookingPrice(svc, 2, 0); got != 6000 {
		t.Fatalf("expected zero duration to use the service duration, got %v", got)
	}
}

func TestRoundPriceHalfAwayFromZero(t *testing.T) {
	cases := map[float64]float64{
		2499.5: 2500,
		2499.4: 2499,
		2500.0: 2500,
	}
	for in, want := range cases {
		if got := RoundPrice(in); got != want {
			t.Fatalf("expected RoundPrice(%v) = %v, got %v", in, want, got)
		}
	}
}

func TestPriceIdentityFractionalDuration(t *testing.T) {
	// 45 minutes of a 60-minute service at 1000: 1000 * 45/60 = 750.
	svc := &models.Service{Duration: 60, Price: 1000}
	if got := CalculateBookingPrice(svc, 1, 45); got != 750 {
		t.Fatalf("expected 750 for 45 of 60 minutes, got %v", got)
	}
}
