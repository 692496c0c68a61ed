package inmemdb

import (
	"context"
	"sort"

	"github.com/studyroom/backend/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.schedule}
}

func (repo *scheduleRepository) CreateSchedule(_ context.Context, sched schedule.Schedule) (schedule.Schedule, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[sched.ID] = &sched
	return sched, nil
}

func (repo *scheduleRepository) GetScheduleByID(_ context.Context, id string) (schedule.Schedule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sched, ok := repo.db.table[id]; ok {
		return *sched, nil
	}
	return schedule.Schedule{}, schedule.ErrNotFound
}

func (repo *scheduleRepository) QuerySchedulesByUser(_ context.Context, userID string) ([]schedule.Schedule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	scheds := make([]schedule.Schedule, 0)
	for _, sched := range repo.db.table {
		if sched.UserID == userID {
			scheds = append(scheds, *sched)
		}
	}
	sort.SliceStable(scheds, func(i, j int) bool { return scheds[i].CreatedAt.After(scheds[j].CreatedAt) })
	return scheds, nil
}
