package models

import "time"

// Booking event kinds handed to the notification collaborator.
const (
	BookingEventCreated   = "booking_created"
	BookingEventConfirmed = "booking_confirmed"
	BookingEventCancelled = "booking_cancelled"
)

// BookingEvent is the boundary payload for the notification collaborator:
// ids, the absolute interval and the status, nothing more. Delivery (push,
// email) is entirely the collaborator's concern.
type BookingEvent struct {
	Kind         string        `json:"kind"`
	BookingID    string        `json:"bookingId"`
	ConsultantID string        `json:"consultantId"`
	RequesterID  string        `json:"requesterId"`
	StartAt      time.Time     `json:"startAt"`
	EndAt        time.Time     `json:"endAt"`
	Status       BookingStatus `json:"status"`
	Reason       string        `json:"reason,omitempty"`
}
