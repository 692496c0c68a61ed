package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/studyroom/backend/core/session"
)

const sessionColumns = `id, user_id, profile_id, start_time, end_time, duration_minutes,
	session_type, energy_level, break_type, notes, created_at, updated_at`

type sessionRepository struct {
	db *sqlx.DB
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *sqlx.DB) session.Repository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) CreateSession(ctx context.Context, sess session.Session) (session.Session, error) {
	q := `INSERT INTO study_sessions (` + sessionColumns + `) VALUES (
		:id, :user_id, :profile_id, :start_time, :end_time, :duration_minutes,
		:session_type, :energy_level, :break_type, :notes, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, sess); err != nil {
		return session.Session{}, errors.Wrap(err, "inserting session")
	}
	return sess, nil
}

func (repo *sessionRepository) GetSessionByID(ctx context.Context, id string) (session.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return session.Session{}, session.ErrNotFound
	}

	var sess session.Session
	q := repo.db.Rebind(`SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = ?`)
	if err := repo.db.GetContext(ctx, &sess, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, errors.Wrapf(err, "selecting session %q", id)
	}
	return sess, nil
}

func (repo *sessionRepository) QuerySessionsByUser(ctx context.Context, userID string, filter session.QueryFilter) ([]session.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE user_id = ?` +
		orderBy(filter.Orderings, session.OrderingFields...)
	args := []interface{}{userID}
	if filter.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	sessions := make([]session.Session, 0)
	if err := repo.db.SelectContext(ctx, &sessions, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting sessions")
	}
	return sessions, nil
}
