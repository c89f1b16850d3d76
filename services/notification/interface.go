package notification

import (
	"context"

	"consultly/models"
)

// Service receives booking lifecycle events. Implementations must be safe to
// call from goroutines the engine fires and forgets; a failed delivery never
// affects the booking itself.
type Service interface {
	NotifyBookingEvent(ctx context.Context, event models.BookingEvent) error
}
