package consultant

import (
	"context"

	"consultly/models"
)

// ScheduleDay is one day of a consultant's concrete upcoming schedule,
// rendered into the viewer's timezone.
type ScheduleDay struct {
	Date    string         `json:"date"`
	Weekday string         `json:"weekday"`
	Slots   []ScheduleSlot `json:"slots"`
}

type ScheduleSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// OnboardInput is the operator-facing payload for creating a consultant.
type OnboardInput struct {
	DisplayName    string                `json:"display_name"`
	HomeTimeZone   models.TimeZoneID     `json:"home_timezone"`
	Windows        []models.WeeklyWindow `json:"windows"`
	SessionLengths []int                 `json:"session_lengths"`
	HourlyRate     float64               `json:"hourly_rate"`
	FCMToken       string                `json:"fcm_token"`
}

// Service manages consultant profiles and availability configuration.
type Service interface {
	Onboard(ctx context.Context, input OnboardInput) (*models.Consultant, error)
	GetByID(ctx context.Context, id string) (*models.Consultant, error)

	// ReplaceWindows swaps the weekly availability wholesale. Existing
	// bookings are untouched even when they fall outside the new windows.
	ReplaceWindows(ctx context.Context, id string, windows []models.WeeklyWindow) error

	// Deactivate hides the consultant from new-booking flows.
	Deactivate(ctx context.Context, id string) error

	// WeeklySchedule projects the next seven days of availability into the
	// viewer's timezone.
	WeeklySchedule(ctx context.Context, id string, viewerTZ models.TimeZoneID) ([]ScheduleDay, error)
}
