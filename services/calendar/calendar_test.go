package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultly/models"
	"consultly/services/civiltime"
)

// Weekday availability Mon-Fri 09:00-17:00 in Berlin.
func berlinConsultant() models.Consultant {
	var windows []models.WeeklyWindow
	for d := 1; d <= 5; d++ {
		windows = append(windows, models.WeeklyWindow{Weekday: d, StartMinute: 9 * 60, EndMinute: 17 * 60})
	}
	return models.Consultant{
		ID:           "cons-berlin",
		HomeTimeZone: "Europe/Berlin",
		Windows:      windows,
		Active:       true,
	}
}

func TestIsOpenInsideWindow(t *testing.T) {
	cal := New(civiltime.NewConverter(civiltime.NewIANARuleProvider()))
	cons := berlinConsultant()

	// Monday 2024-07-01 10:00 Berlin = 08:00 UTC (CEST).
	open, err := cal.IsOpen(cons, time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC), 60)
	require.NoError(t, err)
	assert.True(t, open)

	// Exactly filling the window.
	open, err = cal.IsOpen(cons, time.Date(2024, 7, 1, 7, 0, 0, 0, time.UTC), 8*60)
	require.NoError(t, err)
	assert.True(t, open)
}

func TestIsOpenRejectsPartialOverlap(t *testing.T) {
	cal := New(civiltime.NewConverter(civiltime.NewIANARuleProvider()))
	cons := berlinConsultant()

	// Slot 16:30-17:30 Berlin ends past the window.
	open, err := cal.IsOpen(cons, time.Date(2024, 7, 1, 14, 30, 0, 0, time.UTC), 60)
	require.NoError(t, err)
	assert.False(t, open)

	// Slot starting before the window opens.
	open, err = cal.IsOpen(cons, time.Date(2024, 7, 1, 6, 30, 0, 0, time.UTC), 60)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestIsOpenClosedDay(t *testing.T) {
	cal := New(civiltime.NewConverter(civiltime.NewIANARuleProvider()))
	cons := berlinConsultant()

	// Saturday 2024-07-06 has no window at all.
	open, err := cal.IsOpen(cons, time.Date(2024, 7, 6, 8, 0, 0, 0, time.UTC), 60)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestIsOpenEvaluatesInHomeZone(t *testing.T) {
	cal := New(civiltime.NewConverter(civiltime.NewIANARuleProvider()))

	// Seoul consultant open Monday 20:00-23:59. A request landing Monday
	// morning UTC is Monday evening in Seoul and must match.
	cons := models.Consultant{
		ID:           "cons-seoul",
		HomeTimeZone: "Asia/Seoul",
		Windows:      []models.WeeklyWindow{{Weekday: 1, StartMinute: 20 * 60, EndMinute: 24*60 - 1}},
		Active:       true,
	}

	// Monday 23:00 Seoul = Monday 14:00 UTC.
	open, err := cal.IsOpen(cons, time.Date(2024, 7, 1, 14, 0, 0, 0, time.UTC), 30)
	require.NoError(t, err)
	assert.True(t, open)

	// Monday 14:00 Seoul = Monday 05:00 UTC, outside the evening window.
	open, err = cal.IsOpen(cons, time.Date(2024, 7, 1, 5, 0, 0, 0, time.UTC), 30)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestIsOpenInvalidDuration(t *testing.T) {
	cal := New(civiltime.NewConverter(civiltime.NewIANARuleProvider()))

	_, err := cal.IsOpen(berlinConsultant(), time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC), 0)
	assert.ErrorIs(t, err, models.ErrInvalidDuration)
}

func TestValidateWindows(t *testing.T) {
	tests := []struct {
		name    string
		windows []models.WeeklyWindow
		wantErr error
	}{
		{
			name:    "valid disjoint windows",
			windows: []models.WeeklyWindow{{Weekday: 1, StartMinute: 540, EndMinute: 720}, {Weekday: 1, StartMinute: 780, EndMinute: 1020}},
		},
		{
			name:    "touching endpoints allowed",
			windows: []models.WeeklyWindow{{Weekday: 2, StartMinute: 540, EndMinute: 720}, {Weekday: 2, StartMinute: 720, EndMinute: 900}},
		},
		{
			name:    "bad weekday",
			windows: []models.WeeklyWindow{{Weekday: 7, StartMinute: 540, EndMinute: 720}},
			wantErr: models.ErrInvalidWindow,
		},
		{
			name:    "start not before end",
			windows: []models.WeeklyWindow{{Weekday: 1, StartMinute: 720, EndMinute: 720}},
			wantErr: models.ErrInvalidWindow,
		},
		{
			name:    "end past midnight",
			windows: []models.WeeklyWindow{{Weekday: 1, StartMinute: 1380, EndMinute: 1500}},
			wantErr: models.ErrInvalidWindow,
		},
		{
			name:    "overlap on same weekday",
			windows: []models.WeeklyWindow{{Weekday: 3, StartMinute: 540, EndMinute: 720}, {Weekday: 3, StartMinute: 700, EndMinute: 900}},
			wantErr: models.ErrInvalidWindow,
		},
		{
			name:    "same minutes different weekday ok",
			windows: []models.WeeklyWindow{{Weekday: 3, StartMinute: 540, EndMinute: 720}, {Weekday: 4, StartMinute: 540, EndMinute: 720}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindows(tt.windows)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
