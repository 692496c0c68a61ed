package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/studyroom/backend/core/schedule"
)

const scheduleColumns = `id, user_id, sleep_time, wake_time, energy_peaks, study_goals,
	generated_schedule, created_at, updated_at`

type scheduleRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) CreateSchedule(ctx context.Context, sched schedule.Schedule) (schedule.Schedule, error) {
	q := `INSERT INTO study_schedules (` + scheduleColumns + `) VALUES (
		:id, :user_id, :sleep_time, :wake_time, :energy_peaks, :study_goals,
		:generated_schedule, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, sched); err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "inserting schedule")
	}
	return sched, nil
}

func (repo *scheduleRepository) GetScheduleByID(ctx context.Context, id string) (schedule.Schedule, error) {
	if _, err := uuid.Parse(id); err != nil {
		return schedule.Schedule{}, schedule.ErrNotFound
	}

	var sched schedule.Schedule
	q := repo.db.Rebind(`SELECT ` + scheduleColumns + ` FROM study_schedules WHERE id = ?`)
	if err := repo.db.GetContext(ctx, &sched, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrNotFound
		}
		return schedule.Schedule{}, errors.Wrapf(err, "selecting schedule %q", id)
	}
	return sched, nil
}

func (repo *scheduleRepository) QuerySchedulesByUser(ctx context.Context, userID string) ([]schedule.Schedule, error) {
	q := repo.db.Rebind(`SELECT ` + scheduleColumns + ` FROM study_schedules WHERE user_id = ? ORDER BY created_at DESC`)

	scheds := make([]schedule.Schedule, 0)
	if err := repo.db.SelectContext(ctx, &scheds, q, userID); err != nil {
		return nil, errors.Wrap(err, "selecting schedules")
	}
	return scheds, nil
}
