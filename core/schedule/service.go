package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyroom/backend/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound   = errors.New("Schedule not found")
	ErrIDRequired = errors.New("Schedule ID is required")
)

type (
	Repository interface {
		CreateSchedule(ctx context.Context, sched Schedule) (Schedule, error)
		GetScheduleByID(ctx context.Context, id string) (Schedule, error)
		// QuerySchedulesByUser returns the user's schedules, newest first.
		QuerySchedulesByUser(ctx context.Context, userID string) ([]Schedule, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, userID string, data NewSchedule) (Schedule, error)
		GetByID(ctx context.Context, id string) (Schedule, error)
		QueryByUser(ctx context.Context, userID string) ([]Schedule, error)
		// Calendar renders the stored schedule as a VCALENDAR document.
		Calendar(ctx context.Context, id string) (string, error)
		// Segments classifies the lines of a schedule owned by userID.
		Segments(ctx context.Context, userID, id string) ([]Segment, error)
	}

	Service struct {
		repo    Repository
		calOpts CalendarOptions
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, calOpts: CalendarOptionsFromConfig(conf)}
}

// CalendarOptionsFromConfig falls back to UTC when the configured timezone is unknown.
func CalendarOptionsFromConfig(conf *core.Config) CalendarOptions {
	opts := CalendarOptions{
		Domain:   conf.Calendar.Domain,
		Name:     conf.Calendar.Name,
		Timezone: conf.Calendar.Timezone,
	}
	if loc, err := time.LoadLocation(conf.Calendar.Timezone); err == nil {
		opts.Location = loc
	} else {
		opts.Timezone = "UTC"
	}
	return opts.withDefaults()
}

func (svc *Service) Create(ctx context.Context, userID string, data NewSchedule) (Schedule, error) {
	now := nowFunc().UTC()
	sched := Schedule{
		ID:                uuid.New().String(),
		UserID:            userID,
		SleepTime:         data.SleepTime,
		WakeTime:          data.WakeTime,
		EnergyPeaks:       data.EnergyPeaks,
		StudyGoals:        data.StudyGoals,
		GeneratedSchedule: data.GeneratedSchedule,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return svc.repo.CreateSchedule(ctx, sched)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Schedule, error) {
	if core.CleanString(id) == "" {
		return Schedule{}, ErrIDRequired
	}
	return svc.repo.GetScheduleByID(ctx, id)
}

func (svc *Service) QueryByUser(ctx context.Context, userID string) ([]Schedule, error) {
	return svc.repo.QuerySchedulesByUser(ctx, userID)
}

func (svc *Service) Calendar(ctx context.Context, id string) (string, error) {
	sched, err := svc.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return ExportCalendar(sched.GeneratedSchedule, sched.ID, nowFunc(), svc.calOpts), nil
}

// Segments reports schedules of other users as ErrNotFound.
func (svc *Service) Segments(ctx context.Context, userID, id string) ([]Segment, error) {
	sched, err := svc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sched.UserID != userID {
		return nil, ErrNotFound
	}
	return Render(sched.GeneratedSchedule), nil
}
