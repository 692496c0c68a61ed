package inmemdb

import (
	"sync"

	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/session"
)

type (
	DB struct {
		session  *sessionTable
		schedule *scheduleTable
	}

	sessionTable struct {
		sync.RWMutex
		table map[string]*session.Session
	}

	scheduleTable struct {
		sync.RWMutex
		table map[string]*schedule.Schedule
	}
)

func Open() (*DB, error) {
	db := &DB{
		session:  &sessionTable{table: make(map[string]*session.Session)},
		schedule: &scheduleTable{table: make(map[string]*schedule.Schedule)},
	}
	return db, nil
}
