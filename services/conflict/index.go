package conflict

import (
	"context"
	"sync"
	"time"

	"consultly/models"
	"consultly/utils"

	"go.uber.org/zap"
)

// Index is the in-memory interval set the booking engine consults before
// persisting a slot. Reserve is the single serialization point for a
// consultant's schedule: every check-then-insert happens under that
// consultant's gate, so two racing requests for overlapping slots can never
// both succeed.
type Index interface {
	// Reserve atomically checks the interval against the consultant's
	// reserved set and inserts it when free. Returns ErrSlotTaken on
	// overlap and ErrBusy when the gate cannot be acquired in time.
	Reserve(ctx context.Context, consultantID, bookingID string, start, end time.Time) error

	// Release removes a reservation. Releasing an unknown id is a no-op.
	Release(ctx context.Context, consultantID, bookingID string) error

	// Overlaps reports whether the interval intersects any reservation,
	// without reserving anything. Advisory only; the answer may be stale by
	// the time the caller acts on it.
	Overlaps(consultantID string, start, end time.Time) bool

	// Load hydrates the index from persisted active bookings. Called once
	// at startup before the engine serves traffic.
	Load(bookings []models.Booking)
}

type reservation struct {
	bookingID string
	start     time.Time
	end       time.Time
}

type consultantSchedule struct {
	gate      chan struct{}
	intervals []reservation
}

type index struct {
	mu          sync.Mutex
	schedules   map[string]*consultantSchedule
	gateTimeout time.Duration
}

// NewIndex builds an empty index. gateTimeout bounds how long Reserve and
// Release wait for a consultant's gate before giving up with ErrBusy.
func NewIndex(gateTimeout time.Duration) Index {
	return &index{
		schedules:   make(map[string]*consultantSchedule),
		gateTimeout: gateTimeout,
	}
}

func (ix *index) schedule(consultantID string) *consultantSchedule {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	s, ok := ix.schedules[consultantID]
	if !ok {
		s = &consultantSchedule{gate: make(chan struct{}, 1)}
		ix.schedules[consultantID] = s
	}
	return s
}

// acquire takes the consultant gate or fails with ErrBusy. The context lets
// a cancelled request stop waiting early.
func (ix *index) acquire(ctx context.Context, s *consultantSchedule) error {
	timer := time.NewTimer(ix.gateTimeout)
	defer timer.Stop()
	select {
	case s.gate <- struct{}{}:
		return nil
	case <-timer.C:
		return models.ErrBusy
	case <-ctx.Done():
		return models.ErrBusy
	}
}

func (ix *index) Reserve(ctx context.Context, consultantID, bookingID string, start, end time.Time) error {
	s := ix.schedule(consultantID)
	if err := ix.acquire(ctx, s); err != nil {
		utils.GetLogger().Warn("reservation gate busy",
			zap.String("consultantId", consultantID),
			zap.String("bookingId", bookingID))
		return err
	}
	defer func() { <-s.gate }()

	for _, r := range s.intervals {
		if r.start.Before(end) && start.Before(r.end) {
			return models.ErrSlotTaken
		}
	}
	s.intervals = append(s.intervals, reservation{bookingID: bookingID, start: start, end: end})
	return nil
}

func (ix *index) Release(ctx context.Context, consultantID, bookingID string) error {
	s := ix.schedule(consultantID)
	if err := ix.acquire(ctx, s); err != nil {
		return err
	}
	defer func() { <-s.gate }()

	for i, r := range s.intervals {
		if r.bookingID == bookingID {
			s.intervals = append(s.intervals[:i], s.intervals[i+1:]...)
			return nil
		}
	}
	return nil
}

func (ix *index) Overlaps(consultantID string, start, end time.Time) bool {
	ix.mu.Lock()
	s, ok := ix.schedules[consultantID]
	ix.mu.Unlock()
	if !ok {
		return false
	}

	select {
	case s.gate <- struct{}{}:
	default:
		// Gate held by a writer; a conservative yes keeps the advisory
		// answer safe for pre-checks.
		return true
	}
	defer func() { <-s.gate }()

	for _, r := range s.intervals {
		if r.start.Before(end) && start.Before(r.end) {
			return true
		}
	}
	return false
}

func (ix *index) Load(bookings []models.Booking) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, b := range bookings {
		if !b.Status.Active() {
			continue
		}
		s, ok := ix.schedules[b.ConsultantID]
		if !ok {
			s = &consultantSchedule{gate: make(chan struct{}, 1)}
			ix.schedules[b.ConsultantID] = s
		}
		s.intervals = append(s.intervals, reservation{bookingID: b.ID, start: b.StartAt, end: b.EndAt})
	}
	utils.GetLogger().Info("conflict index hydrated", zap.Int("consultants", len(ix.schedules)))
}
