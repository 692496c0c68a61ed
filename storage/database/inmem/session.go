package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/session"
)

type sessionRepository struct {
	db *sessionTable
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) session.Repository {
	return &sessionRepository{db: db.session}
}

func (repo *sessionRepository) CreateSession(_ context.Context, sess session.Session) (session.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[sess.ID] = &sess
	return sess, nil
}

func (repo *sessionRepository) GetSessionByID(_ context.Context, id string) (session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sess, ok := repo.db.table[id]; ok {
		return *sess, nil
	}
	return session.Session{}, session.ErrNotFound
}

func (repo *sessionRepository) QuerySessionsByUser(_ context.Context, userID string, filter session.QueryFilter) ([]session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	sessions := make([]session.Session, 0)
	for _, sess := range repo.db.table {
		if sess.UserID == userID {
			sessions = append(sessions, *sess)
		}
	}
	sortSessions(sessions, filter.Orderings)
	if filter.Limit > 0 && len(sessions) > filter.Limit {
		sessions = sessions[:filter.Limit]
	}
	return sessions, nil
}

// sortSessions orders by each ordering in turn. NULL is greater than any value, as in postgres.
func sortSessions(sessions []session.Session, orderings []core.DBOrdering) {
	sort.SliceStable(sessions, func(i, j int) bool {
		for _, o := range orderings {
			c := compareField(sessions[i], sessions[j], o.Field)
			if c == 0 {
				continue
			}
			if o.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compareField(a, b session.Session, field string) int {
	switch field {
	case "start_time":
		return compareTime(a.StartTime, true, b.StartTime, true)
	case "end_time":
		return compareTime(a.EndTime.Time, a.EndTime.Valid, b.EndTime.Time, b.EndTime.Valid)
	case "duration_minutes":
		return compareNullable(a.DurationMinutes.Valid, b.DurationMinutes.Valid, func() int {
			return a.DurationMinutes.Int - b.DurationMinutes.Int
		})
	case "created_at":
		return compareTime(a.CreatedAt, true, b.CreatedAt, true)
	}
	return 0
}

func compareTime(a time.Time, aValid bool, b time.Time, bValid bool) int {
	return compareNullable(aValid, bValid, func() int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		}
		return 0
	})
}

func compareNullable(aValid, bValid bool, cmp func() int) int {
	switch {
	case aValid && bValid:
		return cmp()
	case aValid:
		return -1
	case bValid:
		return 1
	}
	return 0
}
