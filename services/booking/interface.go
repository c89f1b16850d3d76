package booking

import (
	"context"

	"consultly/models"
)

// Engine drives the booking lifecycle. Every mutation validates against the
// consultant's availability and the conflict index before touching storage;
// notification delivery never blocks or fails a mutation.
type Engine interface {
	RequestBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string) (*models.Booking, error)
}

// QueryService is the read side: bookings rendered into a viewer's timezone.
type QueryService interface {
	RenderForViewer(ctx context.Context, bookingID string, viewerTZ models.TimeZoneID) (*models.BookingView, error)
	ListForRequester(ctx context.Context, requesterID string, viewerTZ models.TimeZoneID) ([]models.BookingView, error)
	ListForConsultant(ctx context.Context, consultantID string, viewerTZ models.TimeZoneID) ([]models.BookingView, error)
}
