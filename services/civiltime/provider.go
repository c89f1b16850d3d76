package civiltime

import (
	"sync"
	"time"

	"consultly/models"
)

// RuleProvider answers the single question the converter needs: what is the
// UTC offset of a timezone at a given absolute instant. Keeping it behind an
// interface lets tests pin a synthetic transition table instead of depending
// on the host tzdata.
type RuleProvider interface {
	// OffsetAt returns the zone's offset from UTC in minutes east, or
	// ErrInvalidTimezone when the identifier is unknown.
	OffsetAt(tz models.TimeZoneID, at time.Time) (int, error)
}

// IANARuleProvider resolves offsets through the Go runtime's embedded copy of
// the IANA database. Locations are cached; time.LoadLocation walks the
// filesystem on a miss.
type IANARuleProvider struct {
	mu   sync.RWMutex
	locs map[models.TimeZoneID]*time.Location
}

func NewIANARuleProvider() *IANARuleProvider {
	return &IANARuleProvider{locs: make(map[models.TimeZoneID]*time.Location)}
}

func (p *IANARuleProvider) OffsetAt(tz models.TimeZoneID, at time.Time) (int, error) {
	loc, err := p.location(tz)
	if err != nil {
		return 0, err
	}
	_, offsetSeconds := at.In(loc).Zone()
	return offsetSeconds / 60, nil
}

func (p *IANARuleProvider) location(tz models.TimeZoneID) (*time.Location, error) {
	p.mu.RLock()
	loc, ok := p.locs[tz]
	p.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(string(tz))
	if err != nil {
		return nil, models.ErrInvalidTimezone
	}

	p.mu.Lock()
	p.locs[tz] = loc
	p.mu.Unlock()
	return loc, nil
}
