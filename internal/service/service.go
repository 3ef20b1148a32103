package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-station/internal/client"
	"github.com/kjstillabower/weather-station/internal/models"
	"github.com/kjstillabower/weather-station/internal/observability"
)

// WeatherService fronts the weather client for the interactive session.
// Every call reaches the provider: there is no cache and no retry.
type WeatherService struct {
	client client.WeatherClient
	logger *zap.Logger
	newID  func() string
}

// NewWeatherService creates a WeatherService. A nil logger discards logs.
func NewWeatherService(client client.WeatherClient, logger *zap.Logger) *WeatherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeatherService{
		client: client,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// GetWeather looks up the current weather for city in countryCode. Inputs are
// passed through untouched. The returned error is meant to be shown to the user as is.
func (s *WeatherService) GetWeather(ctx context.Context, city, countryCode string) (models.Observation, error) {
	corrID := s.newID()
	ctx = client.WithCorrelationID(ctx, corrID)
	logger := s.logger.With(
		zap.String("correlation_id", corrID),
		zap.String("city", city),
		zap.String("country", countryCode),
	)
	start := time.Now()

	observability.RecordWeatherQuery(countryCode)
	logger.Debug("weather lookup started")

	obs, err := s.client.GetCurrentWeather(ctx, city, countryCode)
	if err != nil {
		category := client.CategorizeError(err)
		observability.WeatherLookupErrorsTotal.WithLabelValues(string(category)).Inc()
		logger.Debug("weather lookup failed",
			zap.String("category", string(category)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return models.Observation{}, fmt.Errorf("fetch weather for %s,%s: %w", city, countryCode, err)
	}

	logger.Debug("weather served",
		zap.String("location", obs.Location),
		zap.String("conditions", obs.Conditions),
		zap.Duration("duration", time.Since(start)),
	)
	return obs, nil
}
