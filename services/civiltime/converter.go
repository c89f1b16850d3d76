package civiltime

import (
	"time"

	"consultly/models"
)

// Converter maps between civil wall-clock readings and absolute instants.
// All scheduling math in the platform runs on the instants it produces;
// nothing else in the codebase interprets timezone rules.
type Converter interface {
	// Resolve maps a civil reading to the absolute instant it names.
	// A reading inside a DST gap (a wall time skipped by spring-forward)
	// resolves to the instant shifted forward by the gap size. A reading
	// inside a fold (repeated by fall-back) resolves to the earlier of the
	// two candidate instants.
	Resolve(c models.CivilInstant) (time.Time, error)

	// Render expresses an absolute instant as the civil reading a clock in
	// the given zone would show. Render(Resolve(c), c.TZ) == c for every c
	// outside a gap.
	Render(at time.Time, tz models.TimeZoneID) (models.CivilInstant, error)

	// Convert re-expresses a civil reading in another timezone.
	Convert(c models.CivilInstant, to models.TimeZoneID) (models.CivilInstant, error)
}

// probeSpan brackets every real UTC offset: no zone is further than 24h from
// UTC in either direction.
const probeSpan = 24 * time.Hour

type converter struct {
	rules RuleProvider
}

// NewConverter returns a Converter backed by the given rule provider.
func NewConverter(rules RuleProvider) Converter {
	return &converter{rules: rules}
}

func (cv *converter) Resolve(c models.CivilInstant) (time.Time, error) {
	// Interpret the civil fields as if they were UTC. The true instant is
	// this wall value minus the zone's offset; the offset in effect is found
	// by probing the rule provider on either side of the wall value, which
	// brackets any transition near the reading.
	wall := time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, 0, 0, time.UTC)

	offBefore, err := cv.rules.OffsetAt(c.TZ, wall.Add(-probeSpan))
	if err != nil {
		return time.Time{}, err
	}
	offAfter, err := cv.rules.OffsetAt(c.TZ, wall.Add(probeSpan))
	if err != nil {
		return time.Time{}, err
	}

	// Try the earlier-offset candidate first: in a fold both candidates
	// reproduce the wall reading and the earlier offset wins by policy.
	tEarly := wall.Add(-time.Duration(offBefore) * time.Minute)
	if ok, err := cv.reproduces(tEarly, c); err != nil {
		return time.Time{}, err
	} else if ok {
		return tEarly, nil
	}

	tLate := wall.Add(-time.Duration(offAfter) * time.Minute)
	if ok, err := cv.reproduces(tLate, c); err != nil {
		return time.Time{}, err
	} else if ok {
		return tLate, nil
	}

	// Neither candidate reads back the requested wall time: the reading sits
	// inside a spring-forward gap. tEarly lands past the transition, shifted
	// forward by exactly the gap size.
	return tEarly, nil
}

func (cv *converter) Render(at time.Time, tz models.TimeZoneID) (models.CivilInstant, error) {
	off, err := cv.rules.OffsetAt(tz, at)
	if err != nil {
		return models.CivilInstant{}, err
	}
	local := at.UTC().Add(time.Duration(off) * time.Minute)
	return models.CivilInstant{
		Year:   local.Year(),
		Month:  int(local.Month()),
		Day:    local.Day(),
		Hour:   local.Hour(),
		Minute: local.Minute(),
		TZ:     tz,
	}, nil
}

func (cv *converter) Convert(c models.CivilInstant, to models.TimeZoneID) (models.CivilInstant, error) {
	at, err := cv.Resolve(c)
	if err != nil {
		return models.CivilInstant{}, err
	}
	return cv.Render(at, to)
}

// reproduces reports whether rendering the instant in c's zone reads back c's
// wall fields.
func (cv *converter) reproduces(at time.Time, c models.CivilInstant) (bool, error) {
	got, err := cv.Render(at, c.TZ)
	if err != nil {
		return false, err
	}
	return got == c, nil
}
