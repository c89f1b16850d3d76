package calendar

import (
	"time"

	"consultly/models"
	"consultly/services/civiltime"
)

// Calendar answers whether an absolute interval falls inside a consultant's
// recurring weekly availability. The check happens entirely in the
// consultant's home timezone; the requester's zone never matters here.
type Calendar interface {
	IsOpen(consultant models.Consultant, start time.Time, durationMinutes int) (bool, error)
}

type calendar struct {
	converter civiltime.Converter
}

func New(converter civiltime.Converter) Calendar {
	return &calendar{converter: converter}
}

// IsOpen renders the start into the consultant's home zone and requires a
// single window on that weekday to contain the whole slot. Windows never
// cross local midnight, so a slot is never stitched across two windows or
// two days.
func (c *calendar) IsOpen(consultant models.Consultant, start time.Time, durationMinutes int) (bool, error) {
	if durationMinutes <= 0 {
		return false, models.ErrInvalidDuration
	}

	local, err := c.converter.Render(start, consultant.HomeTimeZone)
	if err != nil {
		return false, err
	}

	startMinute := local.MinuteOfDay()
	endMinute := startMinute + durationMinutes

	for _, w := range consultant.WindowsOn(local.Weekday()) {
		if w.StartMinute <= startMinute && endMinute <= w.EndMinute {
			return true, nil
		}
	}
	return false, nil
}

// ValidateWindows enforces the invariants every stored window must satisfy:
// a real weekday, minutes inside one day, start before end, and no overlap
// between windows sharing a weekday. Touching endpoints are allowed.
func ValidateWindows(windows []models.WeeklyWindow) error {
	for _, w := range windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			return models.ErrInvalidWindow
		}
		if w.StartMinute < 0 || w.EndMinute > 24*60 || w.StartMinute >= w.EndMinute {
			return models.ErrInvalidWindow
		}
	}
	for i, a := range windows {
		for _, b := range windows[i+1:] {
			if a.Weekday != b.Weekday {
				continue
			}
			if a.StartMinute < b.EndMinute && b.StartMinute < a.EndMinute {
				return models.ErrInvalidWindow
			}
		}
	}
	return nil
}
