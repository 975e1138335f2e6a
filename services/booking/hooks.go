package booking

import (
	"context"

	"bookify/models"

	"go.uber.org/zap"
)

// Side effects never fail the operation that triggered them: observer and
// notifier errors are logged and dropped.

func (s *DefaultBookingService) notifyCreated(ctx context.Context, b *models.Booking) {
	if s.Observer != nil {
		if err := s.Observer.OnBookingCreated(ctx, b); err != nil {
			s.Logger.Warn("Booking created observer failed", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.ScheduleReminder(ctx, b); err != nil {
			s.Logger.Warn("Failed to schedule booking reminder", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
}

func (s *DefaultBookingService) notifyConfirmed(ctx context.Context, b *models.Booking) {
	if s.Notifier != nil {
		if err := s.Notifier.SendBookingConfirmation(ctx, b); err != nil {
			s.Logger.Warn("Failed to send booking confirmation", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	if s.Observer != nil {
		if err := s.Observer.OnBookingConfirmed(ctx, b); err != nil {
			s.Logger.Warn("Booking confirmed observer failed", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
}

func (s *DefaultBookingService) notifyCancelled(ctx context.Context, b *models.Booking) {
	if s.Notifier != nil {
		if err := s.Notifier.SendBookingCancellation(ctx, b); err != nil {
			s.Logger.Warn("Failed to send booking cancellation", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	if s.Observer != nil {
		if err := s.Observer.OnBookingCancelled(ctx, b); err != nil {
			s.Logger.Warn("Booking cancelled observer failed", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
}
