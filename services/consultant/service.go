package consultant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	consultantrepo "consultly/database/repository/consultant"
	"consultly/models"
	"consultly/services/calendar"
	"consultly/services/civiltime"
	"consultly/utils"
)

type service struct {
	repo      consultantrepo.ConsultantRepository
	converter civiltime.Converter
	cache     ScheduleCache
	now       func() time.Time
}

func NewService(repo consultantrepo.ConsultantRepository, converter civiltime.Converter, cache ScheduleCache) Service {
	return &service{repo: repo, converter: converter, cache: cache, now: time.Now}
}

func (s *service) Onboard(ctx context.Context, input OnboardInput) (*models.Consultant, error) {
	// The home zone must resolve before anything is stored; every later
	// availability check depends on it.
	if _, err := s.converter.Render(s.now(), input.HomeTimeZone); err != nil {
		return nil, err
	}
	if err := calendar.ValidateWindows(input.Windows); err != nil {
		return nil, err
	}
	for _, l := range input.SessionLengths {
		if l <= 0 {
			return nil, models.ErrInvalidDuration
		}
	}

	now := s.now().UTC()
	consultant := models.Consultant{
		ID:             uuid.NewString(),
		DisplayName:    input.DisplayName,
		HomeTimeZone:   input.HomeTimeZone,
		Windows:        input.Windows,
		SessionLengths: input.SessionLengths,
		HourlyRate:     input.HourlyRate,
		FCMToken:       input.FCMToken,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(consultant); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("consultant onboarded",
		zap.String("consultantId", consultant.ID),
		zap.String("homeTimezone", string(consultant.HomeTimeZone)))
	return &consultant, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*models.Consultant, error) {
	return s.repo.GetByID(id)
}

func (s *service) ReplaceWindows(ctx context.Context, id string, windows []models.WeeklyWindow) error {
	if err := calendar.ValidateWindows(windows); err != nil {
		return err
	}
	if err := s.repo.ReplaceWindows(id, windows); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.SetActive(id, false); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	utils.GetLogger().Info("consultant deactivated", zap.String("consultantId", id))
	return nil
}

// WeeklySchedule walks the next seven home-zone days, rendering the minute
// endpoints of each window into the viewer's zone. Days with no windows are
// included with an empty slot list.
func (s *service) WeeklySchedule(ctx context.Context, id string, viewerTZ models.TimeZoneID) ([]ScheduleDay, error) {
	key := scheduleKey(id, string(viewerTZ))
	if s.cache != nil {
		if days, ok := s.cache.Get(ctx, key); ok {
			return days, nil
		}
	}

	consultant, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	// Validate the viewer zone up front so a bad tz fails uniformly.
	if _, err := s.converter.Render(s.now(), viewerTZ); err != nil {
		return nil, err
	}

	homeToday, err := s.converter.Render(s.now(), consultant.HomeTimeZone)
	if err != nil {
		return nil, err
	}

	days := make([]ScheduleDay, 0, 7)
	for offset := 0; offset < 7; offset++ {
		date := time.Date(homeToday.Year, time.Month(homeToday.Month), homeToday.Day, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, offset)

		day := ScheduleDay{}
		var heading *models.CivilInstant
		for _, w := range consultant.WindowsOn(date.Weekday()) {
			slot, start, err := s.renderSlot(consultant.HomeTimeZone, date, w, viewerTZ)
			if err != nil {
				return nil, err
			}
			day.Slots = append(day.Slots, slot)
			if heading == nil {
				heading = &start
			}
		}

		// The day heading is the first window start's viewer-local date;
		// a day without windows falls back to home-zone midnight.
		if heading == nil {
			h, err := s.converter.Convert(models.CivilInstant{
				Year: date.Year(), Month: int(date.Month()), Day: date.Day(),
				TZ: consultant.HomeTimeZone,
			}, viewerTZ)
			if err != nil {
				return nil, err
			}
			heading = &h
		}
		day.Date = heading.Date()
		day.Weekday = heading.Weekday().String()
		days = append(days, day)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, days)
	}
	return days, nil
}

func (s *service) renderSlot(homeTZ models.TimeZoneID, date time.Time, w models.WeeklyWindow, viewerTZ models.TimeZoneID) (ScheduleSlot, models.CivilInstant, error) {
	startAt, err := s.converter.Resolve(models.CivilInstant{
		Year: date.Year(), Month: int(date.Month()), Day: date.Day(),
		Hour: w.StartMinute / 60, Minute: w.StartMinute % 60,
		TZ: homeTZ,
	})
	if err != nil {
		return ScheduleSlot{}, models.CivilInstant{}, err
	}

	start, err := s.converter.Render(startAt, viewerTZ)
	if err != nil {
		return ScheduleSlot{}, models.CivilInstant{}, err
	}
	end, err := s.converter.Render(startAt.Add(time.Duration(w.EndMinute-w.StartMinute)*time.Minute), viewerTZ)
	if err != nil {
		return ScheduleSlot{}, models.CivilInstant{}, err
	}

	return ScheduleSlot{Start: start.Clock(), End: end.Clock()}, start, nil
}
