// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lululau/calgrid/internal/calendar"
)

// DefaultHolidaysURL publishes the mainland China holiday table.
const DefaultHolidaysURL = "https://raw.githubusercontent.com/lululau/lucal/main/holidays.json"

// Config holds all application configuration.
// Fields are populated from environment variables and may be overridden by
// command-line flags before Validate runs.
type Config struct {
	// Calendar
	WeekStart string // weekday name or number, 0 = Sunday
	Lunar     bool   // show Chinese lunar labels

	// Disabled days
	HolidaysFile    string // JSON holiday table; empty means the user cache. Unreadable files only warn.
	HolidaysURL     string // where -u downloads the table from
	DisableWeekends bool
	DisableHolidays bool
	StrictRange     bool // reject ranges spanning disabled days

	// Output
	NoColor bool

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
	LogFile   string // where the interactive picker writes logs
}

// Load reads configuration from environment variables.
// It first loads a .env file from the working directory if present.
// Load does not validate: callers apply command-line overrides first and
// then call Validate.
func Load() *Config {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.WeekStart = getEnv("CALGRID_WEEK_START", "sunday")
	cfg.Lunar = getEnvBool("CALGRID_LUNAR", false)

	cfg.HolidaysFile = getEnv("CALGRID_HOLIDAYS_FILE", "")
	cfg.HolidaysURL = getEnv("CALGRID_HOLIDAYS_URL", DefaultHolidaysURL)
	cfg.DisableWeekends = getEnvBool("CALGRID_DISABLE_WEEKENDS", false)
	cfg.DisableHolidays = getEnvBool("CALGRID_DISABLE_HOLIDAYS", false)
	cfg.StrictRange = getEnvBool("CALGRID_STRICT_RANGE", false)

	// https://no-color.org: any non-empty value disables color.
	cfg.NoColor = os.Getenv("NO_COLOR") != ""

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")
	cfg.LogFile = getEnv("LOG_FILE", "")

	return cfg
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	var errs []error

	if _, err := calendar.ParseWeekday(c.WeekStart); err != nil {
		errs = append(errs, fmt.Errorf("CALGRID_WEEK_START: %w", err))
	}

	if u, err := url.Parse(c.HolidaysURL); c.HolidaysURL != "" && (err != nil || (u.Scheme != "http" && u.Scheme != "https")) {
		errs = append(errs, fmt.Errorf("CALGRID_HOLIDAYS_URL must be an http(s) URL; got %q", c.HolidaysURL))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Weekday returns the parsed week start. Call after Validate.
func (c *Config) Weekday() time.Weekday {
	wd, err := calendar.ParseWeekday(c.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return wd
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads an environment variable as a boolean with a default fallback.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
