package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/wotracker/internal/flagx"
	"github.com/dmitrijs2005/wotracker/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Pointer fields distinguish
// "absent" from the zero value so a partial file only overrides what it names.
type JsonConfig struct {
	HTTPAddr          *string         `json:"http_addr"`
	GRPCHealthAddr    *string         `json:"grpc_health_addr"`
	DatabaseDSN       *string         `json:"database_dsn"`
	SecretKey         *string         `json:"secret_key"`
	SessionMaxAge     *timex.Duration `json:"session_max_age"`
	LoginPath         *string         `json:"login_path"`
	CookieName        *string         `json:"cookie_name"`
	CookieSecure      *bool           `json:"cookie_secure"`
	CORSOrigins       []string        `json:"cors_origins"`
	LoginRateLimit    *float64        `json:"login_rps"`
	LoginBurst        *int            `json:"login_burst"`
	RevocationEnabled *bool           `json:"revocation_enabled"`
	HistoryScopeCheck *bool           `json:"history_scope_check"`
	RunMigrations     *bool           `json:"run_migrations"`
	LogLevel          *string         `json:"log_level"`
}

// parseJson loads the file named by -c / -config, if any, and copies every
// field it sets into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	if c.SessionMaxAge != nil {
		config.SessionMaxAge = c.SessionMaxAge.Duration
	}
	setIf(&config.LoginPath, c.LoginPath)
	setIf(&config.CookieName, c.CookieName)
	setIf(&config.CookieSecure, c.CookieSecure)
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	setIf(&config.LoginRateLimit, c.LoginRateLimit)
	setIf(&config.LoginBurst, c.LoginBurst)
	setIf(&config.RevocationEnabled, c.RevocationEnabled)
	setIf(&config.HistoryScopeCheck, c.HistoryScopeCheck)
	setIf(&config.RunMigrations, c.RunMigrations)
	setIf(&config.LogLevel, c.LogLevel)
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
