package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type settingsEnv struct {
	BasePath  string `env:"COSTREPORT_BASEPATH" envDefault:"."`
	LogLevel  string `env:"COSTREPORT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"COSTREPORT_LOG_FORMAT" envDefault:"console"`
}

// Settings are the process settings. Command-line flags override them.
type Settings struct {
	// BasePath is the folder holding costreport.yaml and the systems.
	BasePath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is console or json.
	LogFormat string
}

// LoadSettings reads the settings from the environment, after loading the
// dotenv files (".env" when none is given). Missing dotenv files are ignored.
func LoadSettings(dotenv ...string) (Settings, error) {
	const op = "config.LoadSettings"

	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("%s: load .env: %w", op, err)
	}

	var raw settingsEnv
	if err := env.Parse(&raw); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", op, err)
	}

	return Settings(raw), nil
}
