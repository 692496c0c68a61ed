package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		SecretKey    string // HS256 key of the hosted auth provider
		RollbarToken string
		WorkDir      string

		Server   ServerConfig
		Database DatabaseConfig
		AI       AIConfig
		Calendar CalendarConfig
		Timer    TimerConfig
	}

	ServerConfig struct {
		Host            string
		Port            int
		DebugHost       string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine        string // postgres (default) or sqlite
		Path          string // sqlite file
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	AIConfig struct {
		GatewayURL string
		APIKey     string
		Model      string
		Timeout    time.Duration
	}

	CalendarConfig struct {
		Domain   string // used in event UIDs
		Name     string // X-WR-CALNAME
		Timezone string // location today's events are anchored in
	}

	TimerConfig struct {
		WorkDuration           int // minutes
		ShortBreakDuration     int
		LongBreakDuration      int
		SessionsUntilLongBreak int
		RecordTimeout          time.Duration
		StorePath              string // sqlite file used by the focus CLI
		SettingsPath           string // yaml file used by the focus CLI
	}
)

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewConfig loads the configuration of the current ENV from defaults, the optional
// config/.env.<env> file and the environment (prefixed with the ENV name, e.g. DEV_AI_APIKEY).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "develop")
	conf.SetDefault("appName", "StudyRoom")
	conf.SetDefault("secretKey", "super-secret-jwt-token-with-at-least-32-characters-long")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("server.host", "")
	conf.SetDefault("server.port", 8000)
	conf.SetDefault("server.debugHost", "0.0.0.0:4000")
	conf.SetDefault("server.readTimeout", 5*time.Second)
	conf.SetDefault("server.writeTimeout", 30*time.Second)
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.disableReqLogs", false)

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.path", userDataPath("studyroom.db"))
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", 5432)
	conf.SetDefault("database.name", "studyroom")
	conf.SetDefault("database.user", "studyroom")
	conf.SetDefault("database.password", "studyroom")
	conf.SetDefault("database.adminUser", "postgres")
	conf.SetDefault("database.adminPassword", "")
	conf.SetDefault("database.disableTLS", true)

	conf.SetDefault("ai.gatewayURL", "https://ai.gateway.lovable.dev/v1/chat/completions")
	conf.SetDefault("ai.apiKey", "")
	conf.SetDefault("ai.model", "google/gemini-2.5-flash")
	conf.SetDefault("ai.timeout", 60*time.Second)

	conf.SetDefault("calendar.domain", "studyroom.app")
	conf.SetDefault("calendar.name", "Study Schedule")
	conf.SetDefault("calendar.timezone", "UTC")

	conf.SetDefault("timer.workDuration", 25)
	conf.SetDefault("timer.shortBreakDuration", 5)
	conf.SetDefault("timer.longBreakDuration", 15)
	conf.SetDefault("timer.sessionsUntilLongBreak", 4)
	conf.SetDefault("timer.recordTimeout", 10*time.Second)
	conf.SetDefault("timer.storePath", userDataPath("sessions.db"))
	conf.SetDefault("timer.settingsPath", userDataPath("timer.yaml"))

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		WorkDir:      wd,
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Port:            conf.GetInt("server.port"),
			DebugHost:       conf.GetString("server.debugHost"),
			ReadTimeout:     conf.GetDuration("server.readTimeout"),
			WriteTimeout:    conf.GetDuration("server.writeTimeout"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  conf.GetBool("server.disableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Path:          conf.GetString("database.path"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetInt("database.port"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
		AI: AIConfig{
			GatewayURL: conf.GetString("ai.gatewayURL"),
			APIKey:     conf.GetString("ai.apiKey"),
			Model:      conf.GetString("ai.model"),
			Timeout:    conf.GetDuration("ai.timeout"),
		},
		Calendar: CalendarConfig{
			Domain:   conf.GetString("calendar.domain"),
			Name:     conf.GetString("calendar.name"),
			Timezone: conf.GetString("calendar.timezone"),
		},
		Timer: TimerConfig{
			WorkDuration:           conf.GetInt("timer.workDuration"),
			ShortBreakDuration:     conf.GetInt("timer.shortBreakDuration"),
			LongBreakDuration:      conf.GetInt("timer.longBreakDuration"),
			SessionsUntilLongBreak: conf.GetInt("timer.sessionsUntilLongBreak"),
			RecordTimeout:          conf.GetDuration("timer.recordTimeout"),
			StorePath:              conf.GetString("timer.storePath"),
			SettingsPath:           conf.GetString("timer.settingsPath"),
		},
	}
}

func userDataPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "studyroom", name)
}
