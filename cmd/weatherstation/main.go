package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-station/internal/client"
	"github.com/kjstillabower/weather-station/internal/config"
	httphandler "github.com/kjstillabower/weather-station/internal/http"
	"github.com/kjstillabower/weather-station/internal/observability"
	"github.com/kjstillabower/weather-station/internal/presenter"
	"github.com/kjstillabower/weather-station/internal/service"
	"github.com/kjstillabower/weather-station/internal/session"
)

func main() {
	var (
		apiKey = flag.String("key", "", "OpenWeatherMap API key (overrides WEATHER_API_KEY env)")
		check  = flag.Bool("check", false, "validate the API key and exit")
	)
	flag.Parse()

	os.Exit(run(*apiKey, *check))
}

func run(apiKey string, check bool) int {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = observability.FlushTelemetry(logger) }()

	cfg, err := config.Load(apiKey)
	if err != nil {
		logger.Debug("config", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if cfg.WeatherAPITimeout == 0 {
		logger.Debug("weather API timeout disabled; an unresponsive server blocks the prompt")
	}
	if cfg.WeatherUnits == "" {
		logger.Debug("weather units not set; temperatures are provider default (Kelvin) labeled °C")
	}

	weatherClient, err := client.NewOpenWeatherClient(
		cfg.WeatherAPIKey,
		cfg.WeatherAPIURL,
		cfg.WeatherAPITimeout,
		client.WithUnits(cfg.WeatherUnits),
	)
	if err != nil {
		logger.Debug("weather client", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if check {
		if err := weatherClient.ValidateAPIKey(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Println("API key OK")
		return 0
	}

	if cfg.MetricsAddr != "" {
		metricsServer := httphandler.NewMetricsServer(cfg.MetricsAddr, logger)
		if err := metricsServer.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "error: metrics endpoint: %v\n", err)
			return 1
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}()
	}

	colorMode := presenter.ColorAuto
	if cfg.NoColor {
		colorMode = presenter.ColorNever
	}
	renderer := presenter.NewRenderer(os.Stdout, colorMode)
	weatherService := service.NewWeatherService(weatherClient, logger)

	s := session.New(os.Stdin, os.Stderr, weatherService, renderer, logger)
	if err := s.Run(context.Background()); err != nil {
		if errors.Is(err, session.ErrInputClosed) {
			logger.Debug("input closed", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
