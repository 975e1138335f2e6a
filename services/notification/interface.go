package notification

import (
	"context"
	"fmt"
	"time"

	"bookify/models"
	"bookify/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationService delivers booking notices and schedules reminders.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, b *models.Booking) error
	SendBookingCancellation(ctx context.Context, b *models.Booking) error
	ScheduleReminder(ctx context.Context, b *models.Booking) error
	DeliverReminder(ctx context.Context, p models.ReminderPayload) error
}

// DefaultNotificationService is the production implementation. Notices go
// to the log; reminders are enqueued on asynq and delivered by the worker.
// A delivery channel (push, email) plugs in at DeliverReminder.
type DefaultNotificationService struct {
	client        *asynq.Client
	reminderHours int
	logger        *zap.Logger
}

func NewDefaultNotificationService(client *asynq.Client, reminderHours int, logger *zap.Logger) (*DefaultNotificationService, error) {
	if logger == nil {
		return nil, fmt.Errorf("notification service initialization error: logger is nil")
	}
	return &DefaultNotificationService{
		client:        client,
		reminderHours: reminderHours,
		logger:        logger,
	}, nil
}

func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, b *models.Booking) error {
	s.logger.Info("Booking confirmation sent",
		zap.String("bookingId", b.ID),
		zap.String("userId", b.UserID),
		zap.String("contactEmail", b.ContactEmail))
	return nil
}

func (s *DefaultNotificationService) SendBookingCancellation(ctx context.Context, b *models.Booking) error {
	s.logger.Info("Booking cancellation sent",
		zap.String("bookingId", b.ID),
		zap.String("userId", b.UserID),
		zap.String("contactEmail", b.ContactEmail))
	return nil
}

// ScheduleReminder enqueues a reminder task to fire reminderHours before the
// booking starts. Bookings starting sooner than that get no reminder.
func (s *DefaultNotificationService) ScheduleReminder(ctx context.Context, b *models.Booking) error {
	if s.client == nil || s.reminderHours <= 0 {
		return nil
	}
	fireAt := b.StartDate.Add(-time.Duration(s.reminderHours) * time.Hour)
	if !fireAt.After(time.Now()) {
		s.logger.Debug("Skipping reminder for imminent booking", zap.String("bookingId", b.ID))
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: b.ID,
		UserID:    b.UserID,
		ServiceID: b.ServiceID,
		FireDate:  fireAt.Format(time.RFC3339),
		Title:     "Upcoming booking",
		Body:      fmt.Sprintf("Your booking starts at %s", b.StartDate.Format(time.RFC1123)),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", b.ID, err)
	}
	s.logger.Info("Booking reminder scheduled",
		zap.String("bookingId", b.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// DeliverReminder is invoked by the worker when a reminder task fires.
func (s *DefaultNotificationService) DeliverReminder(ctx context.Context, p models.ReminderPayload) error {
	s.logger.Info("Booking reminder delivered",
		zap.String("bookingId", p.BookingID),
		zap.String("userId", p.UserID),
		zap.String("title", p.Title),
		zap.String("body", p.Body))
	return nil
}
