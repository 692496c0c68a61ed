package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/session"
)

// NewValidator returns a validator and English translator set up like the app's.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	enLocale := en.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate, translator
}

// NewConfig returns the config the tests run with.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.TestMode = true
	conf.SecretKey = "test-secret"
	conf.Calendar.Timezone = "UTC"
	return conf
}

func CreateSchedule(t *testing.T, repo schedule.Repository, id, userID, text string, createdAt ...time.Time) schedule.Schedule {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	sched := schedule.Schedule{
		ID:                id,
		UserID:            userID,
		SleepTime:         "11:00 PM",
		WakeTime:          "7:00 AM",
		EnergyPeaks:       "morning",
		StudyGoals:        "pass the exams",
		GeneratedSchedule: text,
		CreatedAt:         tstamp,
		UpdatedAt:         tstamp,
	}
	sched, err := repo.CreateSchedule(context.Background(), sched)
	if err != nil {
		t.Fatalf("createSchedule() failed: %v", err)
	}
	return sched
}

func CreateSession(t *testing.T, repo session.Repository, id, userID string, start time.Time, minutes int) session.Session {
	start = start.UTC()
	sess := session.Session{
		ID:              id,
		UserID:          userID,
		StartTime:       start,
		EndTime:         null.TimeFrom(start.Add(time.Duration(minutes) * time.Minute)),
		DurationMinutes: null.IntFrom(minutes),
		SessionType:     session.TypeSolo,
		EnergyLevel:     session.EnergyNone,
		BreakType:       session.BreakNone,
		CreatedAt:       start,
		UpdatedAt:       start,
	}
	sess, err := repo.CreateSession(context.Background(), sess)
	if err != nil {
		t.Fatalf("createSession() failed: %v", err)
	}
	return sess
}
