package booking

import (
	"time"

	"consultly/models"
)

// BookingRepository persists bookings. Status transitions go through
// UpdateStatus, which is conditional on the current status so concurrent
// drivers cannot reopen a terminal booking.
type BookingRepository interface {
	Create(booking models.Booking) error
	GetByID(id string) (*models.Booking, error)

	// UpdateStatus flips status only when the stored status is one of the
	// allowed "from" values, also applying extra field updates (cancel
	// reason). Returns ErrInvalidTransition when no document matched with
	// an allowed current status.
	UpdateStatus(id string, from []models.BookingStatus, to models.BookingStatus, extra map[string]interface{}) error

	ListByRequester(requesterID string) ([]models.Booking, error)
	ListByConsultant(consultantID string) ([]models.Booking, error)

	// ListActive returns every pending or confirmed booking, used to
	// hydrate the conflict index at startup.
	ListActive() ([]models.Booking, error)

	// ListStalePending returns pending bookings created before the cutoff,
	// feeding the payment-window sweeper.
	ListStalePending(cutoff time.Time) ([]models.Booking, error)
}
