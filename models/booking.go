package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Terminal reports whether no further transition may leave the status.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// Active reports whether the booking occupies its time range: pending and
// confirmed bookings participate in overlap checks, terminal ones do not.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking is a reserved consultation. Times are stored twice: as the
// consultant's home-timezone civil reading (what the consultant agreed to)
// and as the resolved absolute instant in UTC (what overlap checks and
// viewer-side rendering operate on). Bookings are never deleted; cancellation
// is a status change.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	ConsultantID    string        `bson:"consultant_id" json:"consultant_id"`
	RequesterID     string        `bson:"requester_id" json:"requester_id"`
	StartCivil      CivilInstant  `bson:"start_civil" json:"start_civil"`
	EndCivil        CivilInstant  `bson:"end_civil" json:"end_civil"`
	StartAt         time.Time     `bson:"start_at" json:"start_at"`
	EndAt           time.Time     `bson:"end_at" json:"end_at"`
	DurationMinutes int           `bson:"duration_minutes" json:"duration_minutes"`
	Status          BookingStatus `bson:"status" json:"status"`
	Price           float64       `bson:"price" json:"price"`
	Topic           string        `bson:"topic" json:"topic"`
	CancelReason    string        `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookingRequest carries the plain data needed to request a slot. Start may
// be expressed in any timezone; the engine resolves it to an absolute instant
// before validating.
type BookingRequest struct {
	ConsultantID    string       `json:"consultant_id"`
	RequesterID     string       `json:"requester_id"`
	Start           CivilInstant `json:"start"`
	DurationMinutes int          `json:"duration_minutes"`
	Price           float64      `json:"price"`
	Topic           string       `json:"topic"`
}

// BookingView is a booking's interval re-rendered into a viewer's timezone.
// Two viewers of the same booking may legitimately see different civil dates.
type BookingView struct {
	BookingID string        `json:"booking_id"`
	Timezone  TimeZoneID    `json:"timezone"`
	Date      string        `json:"date"`
	Weekday   string        `json:"weekday"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Status    BookingStatus `json:"status"`
	Topic     string        `json:"topic,omitempty"`
}
