package session

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/studyroom/backend/core"
)

type (
	SessionType string
	EnergyLevel string
	BreakType   string
)

const (
	TypeSolo        SessionType = "solo"
	TypeWithFriends SessionType = "with_friends"

	EnergyNone EnergyLevel = "none"
	EnergyLow  EnergyLevel = "low"
	EnergyHigh EnergyLevel = "high"

	BreakNone  BreakType = "none"
	BreakLight BreakType = "light"
	BreakHeavy BreakType = "heavy"
)

// OrderingFields are the fields sessions may be ordered by.
var OrderingFields = []string{"start_time", "end_time", "duration_minutes", "created_at"}

// Session is a tracked study session (table study_sessions).
type Session struct {
	ID              string      `json:"id" db:"id"`
	UserID          string      `json:"user_id" db:"user_id"`
	ProfileID       null.String `json:"profile_id" db:"profile_id"`
	StartTime       time.Time   `json:"start_time" db:"start_time"` // UTC
	EndTime         null.Time   `json:"end_time" db:"end_time"`     // UTC
	DurationMinutes null.Int    `json:"duration_minutes" db:"duration_minutes"`
	SessionType     SessionType `json:"session_type" db:"session_type"`
	EnergyLevel     EnergyLevel `json:"energy_level" db:"energy_level"`
	BreakType       BreakType   `json:"break_type" db:"break_type"`
	Notes           null.String `json:"notes" db:"notes"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

// NewFromTimer builds the record of a completed focus phase: it ended at `now` and lasted workMinutes.
func NewFromTimer(userID, profileID string, workMinutes, ordinal int, now time.Time) Session {
	now = now.UTC()
	return Session{
		UserID:          userID,
		ProfileID:       null.NewString(profileID, profileID != ""),
		StartTime:       now.Add(-time.Duration(workMinutes) * time.Minute),
		EndTime:         null.TimeFrom(now),
		DurationMinutes: null.IntFrom(workMinutes),
		SessionType:     TypeSolo,
		EnergyLevel:     EnergyHigh,
		BreakType:       BreakNone,
		Notes:           null.StringFrom(fmt.Sprintf("Pomodoro session %d", ordinal)),
	}
}

// NewSession contains information needed to record a Session.
type NewSession struct {
	ProfileID       *string     `json:"profile_id" validate:"omitempty,uuid"`
	StartTime       time.Time   `json:"start_time" validate:"required"`
	EndTime         *time.Time  `json:"end_time"`
	DurationMinutes *int        `json:"duration_minutes" validate:"omitempty,min=0,max=1440"`
	SessionType     SessionType `json:"session_type" validate:"omitempty,oneof=solo with_friends"`
	EnergyLevel     EnergyLevel `json:"energy_level" validate:"omitempty,oneof=none low high"`
	BreakType       BreakType   `json:"break_type" validate:"omitempty,oneof=none light heavy"`
	Notes           *string     `json:"notes" validate:"omitempty,max=2000"`
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	if ns.Notes != nil {
		notes := core.CleanString(*ns.Notes)
		ns.Notes = &notes
	}
	if err := validate.Struct(ns); err != nil {
		return err
	}
	if ns.EndTime != nil && ns.EndTime.Before(ns.StartTime) {
		return core.NewValidationError(
			errors.New("invalid session"),
			core.FieldError{Field: "end_time", Error: "end_time cannot be before start_time"},
		)
	}
	return nil
}

// Session builds the Session the data describes, with the app defaults for omitted enums.
func (ns NewSession) Session(userID string) Session {
	sess := Session{
		UserID:      userID,
		StartTime:   ns.StartTime.UTC(),
		SessionType: ns.SessionType,
		EnergyLevel: ns.EnergyLevel,
		BreakType:   ns.BreakType,
		ProfileID:   null.StringFromPtr(ns.ProfileID),
		Notes:       null.StringFromPtr(ns.Notes),
	}
	if ns.EndTime != nil {
		sess.EndTime = null.TimeFrom(ns.EndTime.UTC())
	}
	if ns.DurationMinutes != nil {
		sess.DurationMinutes = null.IntFrom(*ns.DurationMinutes)
	}
	return sess
}

type QueryFilter struct {
	Limit     int `query:"limit"`
	Orderings []core.DBOrdering
}
