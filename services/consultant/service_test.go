package consultant

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultly/models"
	"consultly/services/civiltime"
)

type memRepo struct {
	mu          sync.Mutex
	consultants map[string]models.Consultant
}

func newMemRepo() *memRepo {
	return &memRepo{consultants: make(map[string]models.Consultant)}
}

func (r *memRepo) Create(c models.Consultant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consultants[c.ID] = c
	return nil
}

func (r *memRepo) GetByID(id string) (*models.Consultant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultants[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) ReplaceWindows(id string, windows []models.WeeklyWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultants[id]
	if !ok {
		return models.ErrNotFound
	}
	c.Windows = windows
	r.consultants[id] = c
	return nil
}

func (r *memRepo) SetActive(id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consultants[id]
	if !ok {
		return models.ErrNotFound
	}
	c.Active = active
	r.consultants[id] = c
	return nil
}

func (r *memRepo) Update(c models.Consultant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.consultants[c.ID]; !ok {
		return models.ErrNotFound
	}
	r.consultants[c.ID] = c
	return nil
}

type memCache struct {
	mu          sync.Mutex
	entries     map[string][]ScheduleDay
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]ScheduleDay)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]ScheduleDay, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	days, ok := c.entries[key]
	return days, ok
}

func (c *memCache) Set(ctx context.Context, key string, days []ScheduleDay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = days
}

func (c *memCache) Invalidate(ctx context.Context, consultantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, consultantID)
	c.entries = make(map[string][]ScheduleDay)
}

func newTestService(repo *memRepo, cache ScheduleCache, now time.Time) Service {
	svc := NewService(repo, civiltime.NewConverter(civiltime.NewIANARuleProvider()), cache)
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestOnboardValidation(t *testing.T) {
	svc := newTestService(newMemRepo(), nil, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))

	_, err := svc.Onboard(context.Background(), OnboardInput{HomeTimeZone: "Fake/Zone"})
	assert.ErrorIs(t, err, models.ErrInvalidTimezone)

	_, err = svc.Onboard(context.Background(), OnboardInput{
		HomeTimeZone: "Asia/Seoul",
		Windows:      []models.WeeklyWindow{{Weekday: 1, StartMinute: 600, EndMinute: 540}},
	})
	assert.ErrorIs(t, err, models.ErrInvalidWindow)

	_, err = svc.Onboard(context.Background(), OnboardInput{
		HomeTimeZone:   "Asia/Seoul",
		SessionLengths: []int{30, -10},
	})
	assert.ErrorIs(t, err, models.ErrInvalidDuration)

	got, err := svc.Onboard(context.Background(), OnboardInput{
		DisplayName:    "Dr. Kim",
		HomeTimeZone:   "Asia/Seoul",
		Windows:        []models.WeeklyWindow{{Weekday: 1, StartMinute: 20 * 60, EndMinute: 24 * 60}},
		SessionLengths: []int{30, 60},
	})
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.NotEmpty(t, got.ID)
}

func TestReplaceWindowsInvalidatesCache(t *testing.T) {
	repo := newMemRepo()
	cache := newMemCache()
	svc := newTestService(repo, cache, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))

	c, err := svc.Onboard(context.Background(), OnboardInput{
		HomeTimeZone: "Europe/Berlin",
		Windows:      []models.WeeklyWindow{{Weekday: 1, StartMinute: 540, EndMinute: 1020}},
	})
	require.NoError(t, err)

	err = svc.ReplaceWindows(context.Background(), c.ID, []models.WeeklyWindow{
		{Weekday: 2, StartMinute: 540, EndMinute: 720},
	})
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, c.ID)

	stored, err := repo.GetByID(c.ID)
	require.NoError(t, err)
	require.Len(t, stored.Windows, 1)
	assert.Equal(t, 2, stored.Windows[0].Weekday)

	// Malformed replacement leaves everything untouched.
	err = svc.ReplaceWindows(context.Background(), c.ID, []models.WeeklyWindow{
		{Weekday: 9, StartMinute: 540, EndMinute: 720},
	})
	assert.ErrorIs(t, err, models.ErrInvalidWindow)
}

func TestDeactivate(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, newMemCache(), time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))

	c, err := svc.Onboard(context.Background(), OnboardInput{HomeTimeZone: "UTC"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), c.ID))
	stored, err := repo.GetByID(c.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), "ghost"), models.ErrNotFound)
}

func TestWeeklyScheduleRendersIntoViewerZone(t *testing.T) {
	repo := newMemRepo()
	// Monday 2024-07-01 noon UTC: Seoul is already Monday 21:00.
	svc := newTestService(repo, nil, time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC))

	c, err := svc.Onboard(context.Background(), OnboardInput{
		HomeTimeZone: "Asia/Seoul",
		Windows:      []models.WeeklyWindow{{Weekday: 1, StartMinute: 20 * 60, EndMinute: 22 * 60}},
	})
	require.NoError(t, err)

	days, err := svc.WeeklySchedule(context.Background(), c.ID, "America/Bogota")
	require.NoError(t, err)
	require.Len(t, days, 7)

	// Seoul Monday 20:00-22:00 is Bogota Monday 06:00-08:00.
	monday := days[0]
	assert.Equal(t, "Monday", monday.Weekday)
	require.Len(t, monday.Slots, 1)
	assert.Equal(t, "06:00", monday.Slots[0].Start)
	assert.Equal(t, "08:00", monday.Slots[0].End)

	// Tuesday has no windows.
	assert.Empty(t, days[1].Slots)

	_, err = svc.WeeklySchedule(context.Background(), c.ID, "Bad/Zone")
	assert.ErrorIs(t, err, models.ErrInvalidTimezone)
}

func TestWeeklyScheduleUsesCache(t *testing.T) {
	repo := newMemRepo()
	cache := newMemCache()
	svc := newTestService(repo, cache, time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC))

	c, err := svc.Onboard(context.Background(), OnboardInput{
		HomeTimeZone: "Asia/Seoul",
		Windows:      []models.WeeklyWindow{{Weekday: 1, StartMinute: 20 * 60, EndMinute: 22 * 60}},
	})
	require.NoError(t, err)

	first, err := svc.WeeklySchedule(context.Background(), c.ID, "Asia/Seoul")
	require.NoError(t, err)

	// Second call is served from the cache even if the repo record is gone.
	delete(repo.consultants, c.ID)
	second, err := svc.WeeklySchedule(context.Background(), c.ID, "Asia/Seoul")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
