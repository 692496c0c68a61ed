package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/session"
	sqlitedb "github.com/studyroom/backend/storage/database/sqlite"
	sqlxrepos "github.com/studyroom/backend/storage/database/sqlx"
)

var t0 = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func openDB(t *testing.T) *sqlx.DB {
	db, err := sqlitedb.Open(context.Background(), sqlitedb.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newSession(userID string, start time.Time, minutes null.Int) session.Session {
	return session.Session{
		ID:              uuid.New().String(),
		UserID:          userID,
		StartTime:       start,
		DurationMinutes: minutes,
		SessionType:     session.TypeSolo,
		EnergyLevel:     session.EnergyLow,
		BreakType:       session.BreakLight,
		CreatedAt:       start,
		UpdatedAt:       start,
	}
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewSessionRepository(openDB(t))

	first := newSession("u1", t0, null.IntFrom(50))
	first.ProfileID = null.StringFrom(uuid.New().String())
	first.EndTime = null.TimeFrom(t0.Add(50 * time.Minute))
	first.Notes = null.StringFrom("chemistry")
	second := newSession("u1", t0.Add(2*time.Hour), null.IntFrom(25))
	third := newSession("u1", t0.Add(time.Hour), null.IntFrom(90))
	other := newSession("u2", t0, null.IntFrom(10))
	for _, sess := range []session.Session{first, second, third, other} {
		_, err := repo.CreateSession(ctx, sess)
		require.NoError(t, err)
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetSessionByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, first.ProfileID, got.ProfileID)
		assert.True(t, first.StartTime.Equal(got.StartTime))
		assert.True(t, got.EndTime.Valid)
		assert.True(t, first.EndTime.Time.Equal(got.EndTime.Time))
		assert.Equal(t, null.IntFrom(50), got.DurationMinutes)
		assert.Equal(t, session.EnergyLow, got.EnergyLevel)
		assert.Equal(t, session.BreakLight, got.BreakType)
		assert.Equal(t, "chemistry", got.Notes.String)

		got, err = repo.GetSessionByID(ctx, second.ID)
		require.NoError(t, err)
		assert.False(t, got.EndTime.Valid)
		assert.False(t, got.Notes.Valid)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetSessionByID(ctx, uuid.New().String())
		assert.Equal(t, session.ErrNotFound, err)
		_, err = repo.GetSessionByID(ctx, "not-a-uuid")
		assert.Equal(t, session.ErrNotFound, err)
	})

	ids := func(sessions []session.Session) []string {
		out := make([]string, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, s.ID)
		}
		return out
	}

	t.Run("query newest first", func(t *testing.T) {
		got, err := repo.QuerySessionsByUser(ctx, "u1", session.QueryFilter{
			Orderings: []core.DBOrdering{{Field: "start_time"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{second.ID, third.ID, first.ID}, ids(got))
	})

	t.Run("query by duration with limit", func(t *testing.T) {
		got, err := repo.QuerySessionsByUser(ctx, "u1", session.QueryFilter{
			Limit:     2,
			Orderings: []core.DBOrdering{{Field: "duration_minutes", Ascending: true}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{second.ID, first.ID}, ids(got))
	})

	t.Run("unknown ordering fields are ignored", func(t *testing.T) {
		got, err := repo.QuerySessionsByUser(ctx, "u1", session.QueryFilter{
			Orderings: []core.DBOrdering{{Field: "notes; DROP TABLE study_sessions"}},
		})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("no sessions", func(t *testing.T) {
		got, err := repo.QuerySessionsByUser(ctx, "nobody", session.QueryFilter{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSessionRepository_rejectsInvalidEnums(t *testing.T) {
	repo := sqlxrepos.NewSessionRepository(openDB(t))
	sess := newSession("u1", t0, null.Int{})
	sess.EnergyLevel = "extreme"

	_, err := repo.CreateSession(context.Background(), sess)
	assert.Error(t, err)
}

func TestScheduleRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewScheduleRepository(openDB(t))

	newSchedule := func(userID string, createdAt time.Time) schedule.Schedule {
		return schedule.Schedule{
			ID:                uuid.New().String(),
			UserID:            userID,
			SleepTime:         "11:00 PM",
			WakeTime:          "7:00 AM",
			EnergyPeaks:       "morning",
			StudyGoals:        "calculus",
			GeneratedSchedule: "9:00 AM - 10:30 AM - Focus study session",
			CreatedAt:         createdAt,
			UpdatedAt:         createdAt,
		}
	}
	older := newSchedule("u1", t0)
	newer := newSchedule("u1", t0.Add(24*time.Hour))
	for _, sched := range []schedule.Schedule{older, newer, newSchedule("u2", t0)} {
		_, err := repo.CreateSchedule(ctx, sched)
		require.NoError(t, err)
	}

	got, err := repo.GetScheduleByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.GeneratedSchedule, got.GeneratedSchedule)
	assert.Equal(t, older.SleepTime, got.SleepTime)
	assert.True(t, older.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.GetScheduleByID(ctx, uuid.New().String())
	assert.Equal(t, schedule.ErrNotFound, err)
	_, err = repo.GetScheduleByID(ctx, "abc123")
	assert.Equal(t, schedule.ErrNotFound, err)

	list, err := repo.QuerySchedulesByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}
