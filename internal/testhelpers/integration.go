//go:build integration
// +build integration

package testhelpers

import (
	"os"
	"testing"
	"time"

	"github.com/kjstillabower/weather-station/internal/client"
	"github.com/kjstillabower/weather-station/internal/observability"
	"github.com/kjstillabower/weather-station/internal/service"
)

// IntegrationTestConfig holds configuration for live-API tests.
type IntegrationTestConfig struct {
	APIKey string
	APIURL string
	Units  string
}

// GetIntegrationConfig loads integration test configuration from environment.
// Skips test if WEATHER_API_KEY is not set.
func GetIntegrationConfig(t *testing.T) IntegrationTestConfig {
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}

	apiURL := os.Getenv("WEATHER_API_URL")
	if apiURL == "" {
		apiURL = client.DefaultAPIURL
	}

	return IntegrationTestConfig{
		APIKey: apiKey,
		APIURL: apiURL,
		Units:  os.Getenv("WEATHER_UNITS"),
	}
}

// SetupIntegrationService creates a service that talks to the live provider.
// A timeout is set here so a stuck upstream fails the test instead of hanging it.
func SetupIntegrationService(t *testing.T, cfg IntegrationTestConfig) *service.WeatherService {
	logger, err := observability.NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	weatherClient, err := client.NewOpenWeatherClient(cfg.APIKey, cfg.APIURL, 10*time.Second, client.WithUnits(cfg.Units))
	if err != nil {
		t.Fatalf("NewOpenWeatherClient() error = %v", err)
	}

	return service.NewWeatherService(weatherClient, logger)
}
