package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/studyroom/backend/core"
)

// Schedule is an AI generated study schedule saved by a user (table study_schedules).
type Schedule struct {
	ID                string    `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	SleepTime         string    `json:"sleep_time" db:"sleep_time"`
	WakeTime          string    `json:"wake_time" db:"wake_time"`
	EnergyPeaks       string    `json:"energy_peaks" db:"energy_peaks"`
	StudyGoals        string    `json:"study_goals" db:"study_goals"`
	GeneratedSchedule string    `json:"generated_schedule" db:"generated_schedule"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewSchedule contains information needed to save a Schedule.
type NewSchedule struct {
	SleepTime         string `json:"sleep_time" validate:"required,clocktime"`
	WakeTime          string `json:"wake_time" validate:"required,clocktime"`
	EnergyPeaks       string `json:"energy_peaks" validate:"max=1000"`
	StudyGoals        string `json:"study_goals" validate:"max=2000"`
	GeneratedSchedule string `json:"generated_schedule" validate:"required"`
}

func (ns *NewSchedule) Validate(validate *validator.Validate) error {
	ns.SleepTime = core.CleanString(ns.SleepTime)
	ns.WakeTime = core.CleanString(ns.WakeTime)
	ns.EnergyPeaks = core.CleanString(ns.EnergyPeaks)
	ns.StudyGoals = core.CleanString(ns.StudyGoals)
	return validate.Struct(ns)
}
