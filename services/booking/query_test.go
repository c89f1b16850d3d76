package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultly/models"
	"consultly/services/civiltime"
)

func newQueryFixture(t *testing.T, bookings ...models.Booking) QueryService {
	t.Helper()
	repo := newFakeBookingRepo()
	for _, b := range bookings {
		require.NoError(t, repo.Create(b))
	}
	return NewQueryService(repo, civiltime.NewConverter(civiltime.NewIANARuleProvider()))
}

func TestRenderForViewerSameDate(t *testing.T) {
	// Monday 23:30-24:00 Seoul = Monday 14:30-15:00 UTC.
	q := newQueryFixture(t, models.Booking{
		ID:           "bk-1",
		ConsultantID: "cons-seoul",
		RequesterID:  "user-1",
		StartAt:      time.Date(2024, 7, 1, 14, 30, 0, 0, time.UTC),
		EndAt:        time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC),
		Status:       models.BookingStatusConfirmed,
		Topic:        "tax advice",
	})

	seoul, err := q.RenderForViewer(context.Background(), "bk-1", "Asia/Seoul")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", seoul.Date)
	assert.Equal(t, "Monday", seoul.Weekday)
	assert.Equal(t, "23:30", seoul.StartTime)
	assert.Equal(t, "00:00", seoul.EndTime)

	bogota, err := q.RenderForViewer(context.Background(), "bk-1", "America/Bogota")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", bogota.Date)
	assert.Equal(t, "Monday", bogota.Weekday)
	assert.Equal(t, "09:30", bogota.StartTime)
	assert.Equal(t, "10:00", bogota.EndTime)
}

func TestRenderForViewerDatesDiverge(t *testing.T) {
	// Tuesday 09:00-10:00 Seoul = Monday 19:00-20:00 Bogota: the same
	// booking sits on different civil dates for the two viewers.
	q := newQueryFixture(t, models.Booking{
		ID:      "bk-2",
		StartAt: time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 7, 2, 1, 0, 0, 0, time.UTC),
		Status:  models.BookingStatusConfirmed,
	})

	seoul, err := q.RenderForViewer(context.Background(), "bk-2", "Asia/Seoul")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-02", seoul.Date)
	assert.Equal(t, "Tuesday", seoul.Weekday)
	assert.Equal(t, "09:00", seoul.StartTime)

	bogota, err := q.RenderForViewer(context.Background(), "bk-2", "America/Bogota")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", bogota.Date)
	assert.Equal(t, "Monday", bogota.Weekday)
	assert.Equal(t, "19:00", bogota.StartTime)
}

func TestRenderForViewerErrors(t *testing.T) {
	q := newQueryFixture(t, models.Booking{
		ID:      "bk-3",
		StartAt: time.Date(2024, 7, 1, 14, 30, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC),
		Status:  models.BookingStatusPending,
	})

	_, err := q.RenderForViewer(context.Background(), "bk-missing", "Asia/Seoul")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = q.RenderForViewer(context.Background(), "bk-3", "Invalid/Zone")
	assert.ErrorIs(t, err, models.ErrInvalidTimezone)
}

func TestListForRequesterRendersAll(t *testing.T) {
	q := newQueryFixture(t,
		models.Booking{
			ID: "bk-a", RequesterID: "user-1",
			StartAt: time.Date(2024, 7, 1, 14, 30, 0, 0, time.UTC),
			EndAt:   time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC),
			Status:  models.BookingStatusConfirmed,
		},
		models.Booking{
			ID: "bk-b", RequesterID: "user-1",
			StartAt: time.Date(2024, 7, 8, 14, 30, 0, 0, time.UTC),
			EndAt:   time.Date(2024, 7, 8, 15, 0, 0, 0, time.UTC),
			Status:  models.BookingStatusPending,
		},
		models.Booking{
			ID: "bk-c", RequesterID: "user-2",
			StartAt: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC),
			Status:  models.BookingStatusConfirmed,
		},
	)

	views, err := q.ListForRequester(context.Background(), "user-1", "America/Bogota")
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, models.TimeZoneID("America/Bogota"), v.Timezone)
		assert.Equal(t, "09:30", v.StartTime)
	}
}
