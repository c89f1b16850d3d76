package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	consultantrepo "consultly/database/repository/consultant"
	"consultly/models"
	"consultly/utils"
)

const TypeBookingEvent = "booking:event"

// NewBookingEventTask wraps a booking lifecycle event for the queue.
func NewBookingEventTask(event models.BookingEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking event: %w", err)
	}
	return asynq.NewTask(TypeBookingEvent, payload, asynq.MaxRetry(5)), nil
}

// BookingEventHandler delivers queued booking events as FCM pushes to the
// consultant's registered device. Requester-side delivery goes through the
// excluded device registry upstream, so it is only logged here.
type BookingEventHandler struct {
	consultants consultantrepo.ConsultantRepository
}

func NewBookingEventHandler(consultants consultantrepo.ConsultantRepository) *BookingEventHandler {
	return &BookingEventHandler{consultants: consultants}
}

func (h *BookingEventHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var event models.BookingEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return fmt.Errorf("failed to unmarshal booking event: %w", err)
	}

	logger := utils.GetLogger().With(
		zap.String("bookingId", event.BookingID),
		zap.String("kind", event.Kind))

	consultant, err := h.consultants.GetByID(event.ConsultantID)
	if err != nil {
		return fmt.Errorf("failed to load consultant for event: %w", err)
	}
	if consultant.FCMToken == "" {
		logger.Info("consultant has no device token, skipping push")
		return nil
	}

	client, err := utils.GetMessagingClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to get messaging client: %w", err)
	}

	msg := &messaging.Message{
		Token: consultant.FCMToken,
		Notification: &messaging.Notification{
			Title: pushTitle(event.Kind),
			Body: fmt.Sprintf("Session %s to %s (UTC)",
				event.StartAt.UTC().Format("Jan 2 15:04"),
				event.EndAt.UTC().Format("15:04")),
		},
		Data: map[string]string{
			"bookingId": event.BookingID,
			"kind":      event.Kind,
			"status":    string(event.Status),
		},
	}
	if _, err := client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send push: %w", err)
	}

	logger.Info("booking push delivered", zap.String("requesterId", event.RequesterID))
	return nil
}

func pushTitle(kind string) string {
	switch kind {
	case models.BookingEventCreated:
		return "New booking request"
	case models.BookingEventConfirmed:
		return "Booking confirmed"
	case models.BookingEventCancelled:
		return "Booking cancelled"
	default:
		return "Booking update"
	}
}
