package sqlitedb

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS study_sessions (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	profile_id       TEXT NULL,
	start_time       DATETIME NOT NULL,
	end_time         DATETIME NULL,
	duration_minutes INTEGER NULL,
	session_type     TEXT NOT NULL DEFAULT 'solo' CHECK (session_type IN ('solo', 'with_friends')),
	energy_level     TEXT NOT NULL DEFAULT 'none' CHECK (energy_level IN ('none', 'low', 'high')),
	break_type       TEXT NOT NULL DEFAULT 'none' CHECK (break_type IN ('none', 'light', 'heavy')),
	notes            TEXT NULL,
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_study_sessions_user_start ON study_sessions (user_id, start_time);

CREATE TABLE IF NOT EXISTS study_schedules (
	id                 TEXT PRIMARY KEY,
	user_id            TEXT NOT NULL,
	sleep_time         TEXT NOT NULL,
	wake_time          TEXT NOT NULL,
	energy_peaks       TEXT NOT NULL DEFAULT '',
	study_goals        TEXT NOT NULL DEFAULT '',
	generated_schedule TEXT NOT NULL,
	created_at         DATETIME NOT NULL,
	updated_at         DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_study_schedules_user_created ON study_schedules (user_id, created_at);
`

// Open opens (creating it if needed) the SQLite database at path and applies the schema.
// The handle uses "?" bind vars, so the sqlx repositories work on it unchanged.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, errors.Wrapf(err, "creating db directory %s", filepath.Dir(path))
		}
	}

	sqlDB, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}
	sqlDB.SetMaxOpenConns(1) // single writer; also keeps a :memory: database alive
	db := sqlx.NewDb(sqlDB.DB, "sqlite3")

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging sqlite database")
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return db, nil
}
