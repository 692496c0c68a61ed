package settingsfile

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/studyroom/backend/core/timer"
)

type yamlSettings struct {
	WorkMinutes            int `yaml:"work_minutes"`
	ShortBreakMinutes      int `yaml:"short_break_minutes"`
	LongBreakMinutes       int `yaml:"long_break_minutes"`
	SessionsUntilLongBreak int `yaml:"sessions_until_long_break"`
}

// Load reads the timer settings stored at path.
// Missing files and zero fields keep the values of defaults.
func Load(path string, defaults timer.Settings) (timer.Settings, error) {
	settings := defaults

	rawData, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, errors.Wrap(err, "reading settings file")
	}

	var fileData yamlSettings
	if err = yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, errors.Wrap(err, "parsing settings yaml")
	}

	applyYamlSettings(&settings, fileData)
	if err = settings.Validate(); err != nil {
		return defaults, err
	}
	return settings, nil
}

// Save validates settings and writes them to path.
func Save(path string, settings timer.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}

	fileData := yamlSettings{
		WorkMinutes:            settings.WorkDuration,
		ShortBreakMinutes:      settings.ShortBreakDuration,
		LongBreakMinutes:       settings.LongBreakDuration,
		SessionsUntilLongBreak: settings.SessionsUntilLongBreak,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return errors.Wrap(err, "marshalling settings yaml")
	}

	if err = ioutil.WriteFile(path, serialized, 0644); err != nil {
		return errors.Wrap(err, "writing settings file")
	}
	return nil
}

func applyYamlSettings(settings *timer.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.WorkDuration = fileData.WorkMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = fileData.LongBreakMinutes
	}
	if fileData.SessionsUntilLongBreak > 0 {
		settings.SessionsUntilLongBreak = fileData.SessionsUntilLongBreak
	}
}
