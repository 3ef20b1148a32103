package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the CLI's settings. Everything comes from the environment;
// there is no config file.
type Config struct {
	WeatherAPIKey     string
	WeatherAPIURL     string
	WeatherAPITimeout time.Duration // 0 means no timeout
	WeatherUnits      string        // "" leaves the provider default (Kelvin)

	NoColor     bool
	MetricsAddr string // empty disables the metrics endpoint
}

const defaultWeatherAPIURL = "https://api.openweathermap.org/data/2.5/weather"

// Load reads configuration from the environment. A non-empty keyOverride
// (the -key flag) wins over WEATHER_API_KEY.
func Load(keyOverride string) (*Config, error) {
	cfg := &Config{}

	cfg.WeatherAPIKey = strings.TrimSpace(keyOverride)
	if cfg.WeatherAPIKey == "" {
		cfg.WeatherAPIKey = strings.TrimSpace(os.Getenv("WEATHER_API_KEY"))
	}
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY required (set env or pass -key)")
	}

	cfg.WeatherAPIURL = strings.TrimSpace(os.Getenv("WEATHER_API_URL"))
	if cfg.WeatherAPIURL == "" {
		cfg.WeatherAPIURL = defaultWeatherAPIURL
	}

	timeout, err := parseDuration(os.Getenv("WEATHER_API_TIMEOUT"), 0)
	if err != nil {
		return nil, fmt.Errorf("WEATHER_API_TIMEOUT: %w", err)
	}
	cfg.WeatherAPITimeout = timeout

	cfg.WeatherUnits = strings.ToLower(strings.TrimSpace(os.Getenv("WEATHER_UNITS")))

	cfg.NoColor, err = parseBool(os.Getenv("WEATHER_NO_COLOR"), false)
	if err != nil {
		return nil, fmt.Errorf("WEATHER_NO_COLOR: %w", err)
	}

	cfg.MetricsAddr = strings.TrimSpace(os.Getenv("METRICS_ADDR"))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDuration returns defaultVal for an empty string. Unlike a YAML default,
// a typo in an env var is reported rather than silently ignored.
func parseDuration(s string, defaultVal time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	if s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func parseBool(s string, defaultVal bool) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid bool %q", s)
	}
	return b, nil
}

// validate checks values that parsed but make no sense.
func validate(cfg *Config) error {
	if cfg.WeatherAPITimeout < 0 {
		return fmt.Errorf("WEATHER_API_TIMEOUT must not be negative, got %s", cfg.WeatherAPITimeout)
	}
	switch cfg.WeatherUnits {
	case "", "standard", "metric", "imperial":
		// valid
	default:
		return fmt.Errorf("WEATHER_UNITS must be standard, metric or imperial, got %q", cfg.WeatherUnits)
	}
	return nil
}
