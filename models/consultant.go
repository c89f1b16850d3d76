package models

import "time"

// WeeklyWindow is a recurring open interval on one weekday, expressed in the
// consultant's home timezone as minutes from midnight. Start is inclusive,
// End exclusive; both lie in [0, 1440) and Start < End, so a window never
// crosses local midnight.
type WeeklyWindow struct {
	Weekday     int `bson:"weekday" json:"weekday"` // Sunday = 0
	StartMinute int `bson:"startMinute" json:"startMinute"`
	EndMinute   int `bson:"endMinute" json:"endMinute"`
}

// Consultant is a bookable expert. Windows are replaced wholesale on edit;
// deactivation hides the consultant from new-booking flows but never touches
// existing bookings.
type Consultant struct {
	ID             string         `bson:"id" json:"id"`
	DisplayName    string         `bson:"displayName" json:"displayName"`
	HomeTimeZone   TimeZoneID     `bson:"homeTimeZone" json:"homeTimeZone"`
	Windows        []WeeklyWindow `bson:"windows" json:"windows"`
	SessionLengths []int          `bson:"sessionLengths" json:"sessionLengths"` // allowed durations, minutes
	HourlyRate     float64        `bson:"hourlyRate" json:"hourlyRate"`
	FCMToken       string         `bson:"fcmToken,omitempty" json:"-"`
	Active         bool           `bson:"active" json:"active"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// WindowsOn returns the consultant's open windows for one weekday.
func (c Consultant) WindowsOn(weekday time.Weekday) []WeeklyWindow {
	var out []WeeklyWindow
	for _, w := range c.Windows {
		if w.Weekday == int(weekday) {
			out = append(out, w)
		}
	}
	return out
}

// AllowsDuration reports whether the duration matches a configured session
// length. An empty configuration accepts any positive duration.
func (c Consultant) AllowsDuration(minutes int) bool {
	if minutes <= 0 {
		return false
	}
	if len(c.SessionLengths) == 0 {
		return true
	}
	for _, l := range c.SessionLengths {
		if l == minutes {
			return true
		}
	}
	return false
}
