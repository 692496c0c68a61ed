package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/session"
	inmemdb "github.com/studyroom/backend/storage/database/inmem"
	testutil "github.com/studyroom/backend/tests"
)

func newService(t *testing.T) (*session.Service, session.Repository) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo := inmemdb.NewSessionRepository(db)
	return session.NewService(repo), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 15, 9, 0, 0, 0, time.FixedZone("EAT", 3*60*60))

	sess, err := svc.Create(ctx, "u1", session.NewSession{StartTime: start})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, time.UTC, sess.StartTime.Location())
	assert.True(t, start.Equal(sess.StartTime))
	assert.Equal(t, session.TypeSolo, sess.SessionType)
	assert.Equal(t, session.EnergyNone, sess.EnergyLevel)
	assert.Equal(t, session.BreakNone, sess.BreakType)
	assert.False(t, sess.EndTime.Valid)
	assert.False(t, sess.Notes.Valid)
	assert.False(t, sess.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	_, err = svc.Create(ctx, "", session.NewSession{StartTime: start})
	assert.Equal(t, session.ErrNoUser, err)

	_, err = svc.Create(ctx, "u1", session.NewSession{StartTime: start, BreakType: "nap"})
	assert.Equal(t, session.ErrInvalidEnum, err)

	_, err = svc.GetByID(ctx, "missing")
	assert.Equal(t, session.ErrNotFound, err)
}

func TestService_Record(t *testing.T) {
	svc, repo := newService(t)
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Record(context.Background(), session.NewFromTimer("u1", "", 25, 3, now)))

	got, err := repo.QuerySessionsByUser(context.Background(), "u1", session.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, null.IntFrom(25), got[0].DurationMinutes)
	assert.Equal(t, now.Add(-25*time.Minute), got[0].StartTime)
	assert.Equal(t, session.EnergyHigh, got[0].EnergyLevel)
	assert.Equal(t, "Pomodoro session 3", got[0].Notes.String)

	assert.Equal(t, session.ErrNoUser, svc.Record(context.Background(), session.NewFromTimer("", "", 25, 1, now)))
}

func TestService_QueryByUser(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	t0 := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	s1 := testutil.CreateSession(t, repo, "s1", "u1", t0, 50)
	s2 := testutil.CreateSession(t, repo, "s2", "u1", t0.Add(2*time.Hour), 25)
	s3 := testutil.CreateSession(t, repo, "s3", "u1", t0.Add(time.Hour), 90)
	testutil.CreateSession(t, repo, "s4", "u2", t0, 10)

	tests := []struct {
		name    string
		filter  session.QueryFilter
		want    []session.Session
		wantErr bool
	}{
		{name: "default: newest first", want: []session.Session{s2, s3, s1}},
		{name: "limit", filter: session.QueryFilter{Limit: 1}, want: []session.Session{s2}},
		{
			name:   "by duration",
			filter: session.QueryFilter{Orderings: []core.DBOrdering{{Field: "duration_minutes", Ascending: true}}},
			want:   []session.Session{s2, s1, s3},
		},
		{
			name:    "invalid ordering",
			filter:  session.QueryFilter{Orderings: []core.DBOrdering{{Field: "notes"}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.QueryByUser(ctx, "u1", tt.filter)
			if tt.wantErr {
				var vErr *core.ValidationError
				assert.True(t, errors.As(err, &vErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSession_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()
	start := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	before := start.Add(-time.Minute)
	notes := "  ch. 4  "
	badProfile := "me"
	minutes := -5

	tests := []struct {
		name      string
		data      session.NewSession
		wantField string
	}{
		{name: "valid", data: session.NewSession{StartTime: start, Notes: &notes}},
		{name: "missing start", data: session.NewSession{}, wantField: "start_time"},
		{name: "bad enum", data: session.NewSession{StartTime: start, SessionType: "group"}, wantField: "session_type"},
		{name: "bad profile", data: session.NewSession{StartTime: start, ProfileID: &badProfile}, wantField: "profile_id"},
		{name: "negative duration", data: session.NewSession{StartTime: start, DurationMinutes: &minutes}, wantField: "duration_minutes"},
		{name: "ends before start", data: session.NewSession{StartTime: start, EndTime: &before}, wantField: "end_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate(validate)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, "ch. 4", *tt.data.Notes)
				return
			}
			require.Error(t, err)
			assert.Contains(t, fieldsOf(err), tt.wantField)
		})
	}
}

func fieldsOf(err error) []string {
	var fields []string
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		for _, f := range vErr.Fields {
			fields = append(fields, f.Field)
		}
		return fields
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}
