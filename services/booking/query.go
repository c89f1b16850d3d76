package booking

import (
	"context"

	bookingrepo "consultly/database/repository/booking"
	"consultly/models"
	"consultly/services/civiltime"
)

type queryService struct {
	bookings  bookingrepo.BookingRepository
	converter civiltime.Converter
}

func NewQueryService(bookings bookingrepo.BookingRepository, converter civiltime.Converter) QueryService {
	return &queryService{bookings: bookings, converter: converter}
}

func (q *queryService) RenderForViewer(ctx context.Context, bookingID string, viewerTZ models.TimeZoneID) (*models.BookingView, error) {
	booking, err := q.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	view, err := q.render(*booking, viewerTZ)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (q *queryService) ListForRequester(ctx context.Context, requesterID string, viewerTZ models.TimeZoneID) ([]models.BookingView, error) {
	bookings, err := q.bookings.ListByRequester(requesterID)
	if err != nil {
		return nil, err
	}
	return q.renderAll(bookings, viewerTZ)
}

func (q *queryService) ListForConsultant(ctx context.Context, consultantID string, viewerTZ models.TimeZoneID) ([]models.BookingView, error) {
	bookings, err := q.bookings.ListByConsultant(consultantID)
	if err != nil {
		return nil, err
	}
	return q.renderAll(bookings, viewerTZ)
}

// render re-expresses the stored absolute interval in the viewer's zone. The
// date shown is the start's local date; an interval crossing the viewer's
// midnight keeps its end time under the start's date heading.
func (q *queryService) render(b models.Booking, viewerTZ models.TimeZoneID) (models.BookingView, error) {
	start, err := q.converter.Render(b.StartAt, viewerTZ)
	if err != nil {
		return models.BookingView{}, err
	}
	end, err := q.converter.Render(b.EndAt, viewerTZ)
	if err != nil {
		return models.BookingView{}, err
	}

	return models.BookingView{
		BookingID: b.ID,
		Timezone:  viewerTZ,
		Date:      start.Date(),
		Weekday:   start.Weekday().String(),
		StartTime: start.Clock(),
		EndTime:   end.Clock(),
		Status:    b.Status,
		Topic:     b.Topic,
	}, nil
}

func (q *queryService) renderAll(bookings []models.Booking, viewerTZ models.TimeZoneID) ([]models.BookingView, error) {
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		view, err := q.render(b, viewerTZ)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
