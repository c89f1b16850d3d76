package models

import (
	"fmt"
	"time"
)

// TimeZoneID names an IANA timezone, e.g. "Asia/Seoul".
type TimeZoneID string

// CivilInstant is a wall-clock reading tied to one timezone. It carries no
// absolute meaning until resolved through the civiltime converter: the same
// civil fields name different instants in different zones, and a reading
// inside a DST gap names no instant at all.
type CivilInstant struct {
	Year   int        `bson:"year" json:"year"`
	Month  int        `bson:"month" json:"month"`
	Day    int        `bson:"day" json:"day"`
	Hour   int        `bson:"hour" json:"hour"`
	Minute int        `bson:"minute" json:"minute"`
	TZ     TimeZoneID `bson:"tz" json:"tz"`
}

// MinuteOfDay returns minutes elapsed since local midnight.
func (c CivilInstant) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// Weekday returns the day of week of the civil date (Sunday = 0).
func (c CivilInstant) Weekday() time.Weekday {
	return time.Date(c.Year, time.Month(c.Month), c.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Date returns the civil date formatted as "2006-01-02".
func (c CivilInstant) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month, c.Day)
}

// Clock returns the wall-clock reading formatted as "15:04".
func (c CivilInstant) Clock() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// SameWall reports whether two readings share identical civil fields and zone.
func (c CivilInstant) SameWall(other CivilInstant) bool {
	return c == other
}
