package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingrepo "consultly/database/repository/booking"
	consultantrepo "consultly/database/repository/consultant"
	"consultly/models"
	"consultly/services/calendar"
	"consultly/services/civiltime"
	"consultly/services/conflict"
	"consultly/services/notification"
	"consultly/utils"
)

type engine struct {
	consultants consultantrepo.ConsultantRepository
	bookings    bookingrepo.BookingRepository
	converter   civiltime.Converter
	calendar    calendar.Calendar
	index       conflict.Index
	notifier    notification.Service
	now         func() time.Time
}

// NewEngine wires the booking engine. The conflict index must already be
// hydrated with active bookings.
func NewEngine(
	consultants consultantrepo.ConsultantRepository,
	bookings bookingrepo.BookingRepository,
	converter civiltime.Converter,
	cal calendar.Calendar,
	index conflict.Index,
	notifier notification.Service,
) Engine {
	return &engine{
		consultants: consultants,
		bookings:    bookings,
		converter:   converter,
		calendar:    cal,
		index:       index,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (e *engine) RequestBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	consultant, err := e.consultants.GetByID(req.ConsultantID)
	if err != nil {
		return nil, err
	}
	if !consultant.Active {
		return nil, models.ErrConsultantUnavailable
	}
	if !consultant.AllowsDuration(req.DurationMinutes) {
		return nil, models.ErrInvalidDuration
	}

	// The requester expresses the start in any zone; everything after this
	// point runs on the absolute instant.
	startAt, err := e.converter.Resolve(req.Start)
	if err != nil {
		return nil, err
	}
	endAt := startAt.Add(time.Duration(req.DurationMinutes) * time.Minute)

	open, err := e.calendar.IsOpen(*consultant, startAt, req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, models.ErrOutsideAvailability
	}

	// Stored civil fields are always the consultant's home-zone reading,
	// regardless of what zone the request arrived in.
	startCivil, err := e.converter.Render(startAt, consultant.HomeTimeZone)
	if err != nil {
		return nil, err
	}
	endCivil, err := e.converter.Render(endAt, consultant.HomeTimeZone)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	booking := models.Booking{
		ID:              uuid.NewString(),
		ConsultantID:    consultant.ID,
		RequesterID:     req.RequesterID,
		StartCivil:      startCivil,
		EndCivil:        endCivil,
		StartAt:         startAt.UTC(),
		EndAt:           endAt.UTC(),
		DurationMinutes: req.DurationMinutes,
		Status:          models.BookingStatusPending,
		Price:           req.Price,
		Topic:           req.Topic,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := e.index.Reserve(ctx, consultant.ID, booking.ID, booking.StartAt, booking.EndAt); err != nil {
		return nil, err
	}

	if err := e.bookings.Create(booking); err != nil {
		// The slot must not stay held by a booking that was never stored.
		if relErr := e.index.Release(context.WithoutCancel(ctx), consultant.ID, booking.ID); relErr != nil {
			utils.GetLogger().Error("failed to release reservation after persist failure",
				zap.String("bookingId", booking.ID), zap.Error(relErr))
		}
		return nil, err
	}

	e.emit(ctx, models.BookingEventCreated, booking, "")
	return &booking, nil
}

func (e *engine) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	err := e.bookings.UpdateStatus(bookingID,
		[]models.BookingStatus{models.BookingStatusPending},
		models.BookingStatusConfirmed, nil)
	if err != nil {
		return nil, err
	}

	booking, err := e.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	e.emit(ctx, models.BookingEventConfirmed, *booking, "")
	return booking, nil
}

func (e *engine) Cancel(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	err := e.bookings.UpdateStatus(bookingID,
		[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed},
		models.BookingStatusCancelled,
		map[string]interface{}{"cancel_reason": reason})
	if err != nil {
		return nil, err
	}

	booking, err := e.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if relErr := e.index.Release(ctx, booking.ConsultantID, booking.ID); relErr != nil {
		utils.GetLogger().Error("failed to release cancelled booking",
			zap.String("bookingId", booking.ID), zap.Error(relErr))
	}

	e.emit(ctx, models.BookingEventCancelled, *booking, reason)
	return booking, nil
}

func (e *engine) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, models.ErrInvalidTransition
	}
	if e.now().Before(booking.EndAt) {
		return nil, models.ErrTooEarly
	}

	err = e.bookings.UpdateStatus(bookingID,
		[]models.BookingStatus{models.BookingStatusConfirmed},
		models.BookingStatusCompleted, nil)
	if err != nil {
		return nil, err
	}

	// A completed booking is in the past; dropping its reservation keeps
	// the index bounded without affecting overlap checks.
	if relErr := e.index.Release(ctx, booking.ConsultantID, booking.ID); relErr != nil {
		utils.GetLogger().Error("failed to release completed booking",
			zap.String("bookingId", booking.ID), zap.Error(relErr))
	}

	return e.bookings.GetByID(bookingID)
}

func (e *engine) emit(ctx context.Context, kind string, b models.Booking, reason string) {
	event := models.BookingEvent{
		Kind:         kind,
		BookingID:    b.ID,
		ConsultantID: b.ConsultantID,
		RequesterID:  b.RequesterID,
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		Status:       b.Status,
		Reason:       reason,
	}
	go func() {
		if err := e.notifier.NotifyBookingEvent(context.WithoutCancel(ctx), event); err != nil {
			utils.GetLogger().Warn("booking event delivery failed",
				zap.String("bookingId", b.ID), zap.String("kind", kind), zap.Error(err))
		}
	}()
}
