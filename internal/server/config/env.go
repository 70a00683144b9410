package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays WOTRACKER_* environment variables onto config. Files in
// dotenv are loaded first when they exist; they never override variables
// already set in the process environment. Unset variables leave the current
// field value alone.
func parseEnv(config *Config, dotenv ...string) error {
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
