package timer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/studyroom/backend/core"
)

var (
	settingsValidate = newSettingsValidator()

	errInvalidSettings = errors.New("invalid timer settings")
)

// Settings holds the phase durations, in minutes.
type Settings struct {
	WorkDuration           int `json:"workDuration" yaml:"work_duration" validate:"min=1,max=60"`
	ShortBreakDuration     int `json:"shortBreakDuration" yaml:"short_break_duration" validate:"min=1,max=30"`
	LongBreakDuration      int `json:"longBreakDuration" yaml:"long_break_duration" validate:"min=1,max=60"`
	SessionsUntilLongBreak int `json:"sessionsUntilLongBreak" yaml:"sessions_until_long_break" validate:"min=1,max=10"`
}

func DefaultSettings() Settings {
	return Settings{
		WorkDuration:           25,
		ShortBreakDuration:     5,
		LongBreakDuration:      15,
		SessionsUntilLongBreak: 4,
	}
}

// SettingsFromConfig reads the timer section of the app config.
func SettingsFromConfig(conf *core.Config) Settings {
	return Settings{
		WorkDuration:           conf.Timer.WorkDuration,
		ShortBreakDuration:     conf.Timer.ShortBreakDuration,
		LongBreakDuration:      conf.Timer.LongBreakDuration,
		SessionsUntilLongBreak: conf.Timer.SessionsUntilLongBreak,
	}
}

// Minutes returns the configured duration of mode.
func (s Settings) Minutes(mode Mode) int {
	switch mode {
	case ShortBreak:
		return s.ShortBreakDuration
	case LongBreak:
		return s.LongBreakDuration
	default:
		return s.WorkDuration
	}
}

func (s Settings) Seconds(mode Mode) int {
	return s.Minutes(mode) * 60
}

// Validate reports out of range durations as a *core.ValidationError.
func (s Settings) Validate() error {
	err := settingsValidate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "validating timer settings")
	}
	flds := make([]core.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		flds = append(flds, core.FieldError{Field: fe.Field(), Error: rangeText(fe)})
	}
	return core.NewValidationError(errInvalidSettings, flds...)
}

func rangeText(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

func newSettingsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}
