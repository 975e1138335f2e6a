package booking

import (
	"fmt"
	"testing"
	"time"

	"bookify/models"
)

var testNow = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC) // a Monday

func testService() *models.Service {
	return &models.Service{
		ID:       "svc-1",
		Name:     "Deep Tissue Massage",
		Duration: 60,
		Price:    5000,
		Currency: "USD",
		IsActive: true,
	}
}

func TestValidatePastBookingRejected(t *testing.T) {
	svc := testService()
	start := testNow.Add(-1 * time.Hour)
	err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{})
	if err == nil {
		t.Fatalf("expected error for past booking, got nil")
	}
	if err.Message != MsgBookingInPast {
		t.Fatalf("expected %q, got %q", MsgBookingInPast, err.Message)
	}
}

func TestValidateStartExactlyNowRejected(t *testing.T) {
	svc := testService()
	err := ValidateBookingTime(testNow, testNow, testNow.Add(60*time.Minute), svc, Rules{})
	if err == nil || err.Message != MsgBookingInPast {
		t.Fatalf("expected %q for start == now, got %v", MsgBookingInPast, err)
	}
}

func TestValidateMinAdvance(t *testing.T) {
	svc := testService()
	rules := Rules{MinAdvanceTime: 120}

	start := testNow.Add(30 * time.Minute)
	err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, rules)
	if err == nil {
		t.Fatalf("expected min-advance error, got nil")
	}
	want := fmt.Sprintf(MsgMinAdvance, 120)
	if err.Message != want {
		t.Fatalf("expected %q, got %q", want, err.Message)
	}

	start = testNow.Add(3 * time.Hour)
	if err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, rules); err != nil {
		t.Fatalf("expected booking beyond min advance to pass, got %v", err)
	}
}

func TestValidateMaxAdvance(t *testing.T) {
	svc := testService()
	rules := Rules{MaxAdvanceDays: 30}

	start := testNow.Add(31 * 24 * time.Hour)
	err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, rules)
	if err == nil {
		t.Fatalf("expected max-advance error, got nil")
	}
	want := fmt.Sprintf(MsgMaxAdvance, 30)
	if err.Message != want {
		t.Fatalf("expected %q, got %q", want, err.Message)
	}
}

func TestValidateServiceBookingWindowFillsUnsetRules(t *testing.T) {
	svc := testService()
	svc.BookingWindow = &models.BookingWindow{MinAdvanceHours: 2, MaxAdvanceDays: 7}

	start := testNow.Add(30 * time.Minute)
	err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{})
	if err == nil {
		t.Fatalf("expected service booking window to enforce min advance, got nil")
	}
	want := fmt.Sprintf(MsgMinAdvance, 120)
	if err.Message != want {
		t.Fatalf("expected %q, got %q", want, err.Message)
	}

	start = testNow.Add(8 * 24 * time.Hour)
	err = ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{})
	if err == nil {
		t.Fatalf("expected service booking window to enforce max advance, got nil")
	}
	want = fmt.Sprintf(MsgMaxAdvance, 7)
	if err.Message != want {
		t.Fatalf("expected %q, got %q", want, err.Message)
	}
}

func TestValidateEndBeforeStart(t *testing.T) {
	svc := testService()
	start := testNow.Add(24 * time.Hour)
	err := ValidateBookingTime(testNow, start, start.Add(-30*time.Minute), svc, Rules{})
	if err == nil || err.Message != MsgEndBeforeStart {
		t.Fatalf("expected %q, got %v", MsgEndBeforeStart, err)
	}

	// Zero-length interval is also rejected.
	err = ValidateBookingTime(testNow, start, start, svc, Rules{})
	if err == nil || err.Message != MsgEndBeforeStart {
		t.Fatalf("expected %q for zero-length booking, got %v", MsgEndBeforeStart, err)
	}
}

func TestValidateDurationTolerance(t *testing.T) {
	svc := testService()
	start := testNow.Add(24 * time.Hour)

	// The tolerance band is inclusive: 55 and 65 minutes both pass.
	for _, minutes := range []int{55, 60, 65} {
		if err := ValidateBookingTime(testNow, start, start.Add(time.Duration(minutes)*time.Minute), svc, Rules{}); err != nil {
			t.Fatalf("expected %d-minute booking to pass, got %v", minutes, err)
		}
	}

	want := fmt.Sprintf(MsgDurationMismatch, 60)
	for _, minutes := range []int{54, 66} {
		err := ValidateBookingTime(testNow, start, start.Add(time.Duration(minutes)*time.Minute), svc, Rules{})
		if err == nil {
			t.Fatalf("expected %d-minute booking to fail, got nil", minutes)
		}
		if err.Message != want {
			t.Fatalf("expected %q, got %q", want, err.Message)
		}
	}
}

func TestValidateEmptySlotsUnrestricted(t *testing.T) {
	svc := testService()
	// 03:00 on a Sunday, no slots defined: any time goes.
	start := time.Date(2025, time.June, 8, 3, 0, 0, 0, time.UTC)
	if err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{}); err != nil {
		t.Fatalf("expected no slot restriction without slots, got %v", err)
	}
}

func TestValidateSlotBoundariesInclusive(t *testing.T) {
	svc := testService()
	svc.AvailableSlots = []models.AvailableSlot{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"}, // Tuesdays
	}

	tuesday := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		clock string
		ok    bool
	}{
		{"09:00", true},  // start boundary inclusive
		{"17:00", true},  // end boundary inclusive
		{"12:30", true},
		{"08:59", false},
		{"17:01", false},
	}
	for _, tc := range cases {
		var hh, mm int
		fmt.Sscanf(tc.clock, "%d:%d", &hh, &mm)
		start := tuesday.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
		err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{})
		if tc.ok && err != nil {
			t.Fatalf("expected start at %s to pass, got %v", tc.clock, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("expected start at %s to fail, got nil", tc.clock)
			}
			if err.Message != MsgSlotUnavailable {
				t.Fatalf("expected %q, got %q", MsgSlotUnavailable, err.Message)
			}
		}
	}
}

func TestValidateSlotChecksStartOnly(t *testing.T) {
	svc := testService()
	svc.AvailableSlots = []models.AvailableSlot{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
	}

	// Starts at the end boundary; the booking end runs past the slot and is
	// not checked.
	start := time.Date(2025, time.June, 3, 17, 0, 0, 0, time.UTC)
	if err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{}); err != nil {
		t.Fatalf("expected end past slot to pass, got %v", err)
	}

	// Wrong weekday fails regardless of clock time.
	start = time.Date(2025, time.June, 4, 10, 0, 0, 0, time.UTC)
	err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{})
	if err == nil || err.Message != MsgSlotUnavailable {
		t.Fatalf("expected %q on wrong weekday, got %v", MsgSlotUnavailable, err)
	}
}

func TestValidateSlotUsesConfiguredTimezone(t *testing.T) {
	svc := testService()
	svc.AvailableSlots = []models.AvailableSlot{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
	}
	nairobi := time.FixedZone("EAT", 3*60*60)

	// 07:00 UTC on Tuesday is 10:00 in Nairobi: inside the slot there,
	// outside it in UTC.
	start := time.Date(2025, time.June, 3, 7, 0, 0, 0, time.UTC)
	if err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{TimeZone: nairobi}); err != nil {
		t.Fatalf("expected slot check in configured timezone to pass, got %v", err)
	}
	err := ValidateBookingTime(testNow, start, start.Add(60*time.Minute), svc, Rules{})
	if err == nil || err.Message != MsgSlotUnavailable {
		t.Fatalf("expected %q without timezone override, got %v", MsgSlotUnavailable, err)
	}
}

func TestValidateCheckOrder(t *testing.T) {
	// A booking that is both in the past and has end before start reports
	// the past-booking failure: checks short-circuit in order.
	svc := testService()
	start := testNow.Add(-2 * time.Hour)
	err := ValidateBookingTime(testNow, start, start.Add(-1*time.Hour), svc, Rules{})
	if err == nil || err.Message != MsgBookingInPast {
		t.Fatalf("expected %q to win over later checks, got %v", MsgBookingInPast, err)
	}
}
