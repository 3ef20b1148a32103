package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kjstillabower/weather-station/internal/models"
	"github.com/kjstillabower/weather-station/internal/observability"
)

// DefaultAPIURL is the OpenWeatherMap current weather endpoint.
const DefaultAPIURL = "https://api.openweathermap.org/data/2.5/weather"

type WeatherClient interface {
	GetCurrentWeather(ctx context.Context, city, countryCode string) (models.Observation, error)
	ValidateAPIKey(ctx context.Context) error
}

var (
	ErrInvalidAPIKey     = errors.New("invalid API key")
	ErrLocationNotFound  = errors.New("location not found")
	ErrUpstreamFailure   = errors.New("upstream failure")
	ErrRateLimited       = errors.New("rate limited")
	ErrMalformedResponse = errors.New("malformed response")
)

type OpenWeatherClient struct {
	apiKey string
	apiURL string
	units  string
	client *http.Client
}

// Option customizes an OpenWeatherClient.
type Option func(*OpenWeatherClient)

// WithUnits sets the units query parameter. Empty leaves it off, so the
// provider answers in its default (Kelvin for temperature).
func WithUnits(units string) Option {
	return func(c *OpenWeatherClient) { c.units = units }
}

// NewOpenWeatherClient returns a client for apiURL. A zero timeout means the
// request waits for the server indefinitely.
func NewOpenWeatherClient(apiKey, apiURL string, timeout time.Duration, opts ...Option) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidAPIKey)
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", timeout)
	}

	c := &OpenWeatherClient{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// openWeatherResponse uses pointers so absent fields can be told apart from zero values.
type openWeatherResponse struct {
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Name *string `json:"name"`
}

// apiError is the body OpenWeatherMap sends with non-2xx statuses.
// cod arrives as a number or a string depending on the endpoint.
type apiError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// GetCurrentWeather issues one GET for city,countryCode and decodes the body.
// It never retries.
func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, city, countryCode string) (models.Observation, error) {
	start := time.Now()

	req, err := c.buildRequest(ctx, city+","+countryCode)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return models.Observation{}, fmt.Errorf("build request: %w", err)
	}

	corrID := CorrelationIDFromContext(ctx)
	if corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		observability.WeatherAPIDuration.WithLabelValues("error").Observe(duration)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return models.Observation{}, fmt.Errorf("request timeout: %w", err)
		}
		return models.Observation{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(status).Observe(duration)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Observation{}, fmt.Errorf("read response body: %w", err)
	}

	if err := handleErrorResponse(resp.StatusCode, body); err != nil {
		return models.Observation{}, err
	}

	obs, err := decodeObservation(body)
	if err != nil {
		return models.Observation{}, err
	}
	obs.CorrelationID = corrID
	obs.FetchedAt = time.Now()
	return obs, nil
}

func (c *OpenWeatherClient) buildRequest(ctx context.Context, query string) (*http.Request, error) {
	baseURL, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := baseURL.Query()
	params.Set("q", query)
	params.Set("appid", c.apiKey)
	if c.units != "" {
		params.Set("units", c.units)
	}
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

func handleErrorResponse(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	detail := fmt.Sprintf("HTTP %d", statusCode)
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		detail = fmt.Sprintf("HTTP %d: %s", statusCode, apiErr.Message)
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w (%s)", ErrInvalidAPIKey, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w (%s)", ErrLocationNotFound, detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w (%s)", ErrRateLimited, detail)
	}
	return fmt.Errorf("%w: %s", ErrUpstreamFailure, detail)
}

// decodeObservation requires every field the summary prints. A missing or
// mistyped field, or an empty weather list, is ErrMalformedResponse.
func decodeObservation(body []byte) (models.Observation, error) {
	var apiResp openWeatherResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return models.Observation{}, fmt.Errorf("%w: parse response: %v", ErrMalformedResponse, err)
	}

	var missing []string
	if len(apiResp.Weather) == 0 {
		missing = append(missing, "weather")
	} else if apiResp.Weather[0].Description == nil {
		missing = append(missing, "weather[0].description")
	}
	if apiResp.Main == nil {
		missing = append(missing, "main")
	} else {
		if apiResp.Main.Temp == nil {
			missing = append(missing, "main.temp")
		}
		if apiResp.Main.Humidity == nil {
			missing = append(missing, "main.humidity")
		}
		if apiResp.Main.Pressure == nil {
			missing = append(missing, "main.pressure")
		}
	}
	if apiResp.Wind == nil || apiResp.Wind.Speed == nil {
		missing = append(missing, "wind.speed")
	}
	if apiResp.Name == nil {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return models.Observation{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	return models.Observation{
		Location:    *apiResp.Name,
		Conditions:  *apiResp.Weather[0].Description,
		Temperature: *apiResp.Main.Temp,
		Humidity:    *apiResp.Main.Humidity,
		Pressure:    *apiResp.Main.Pressure,
		WindSpeed:   *apiResp.Wind.Speed,
	}, nil
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}

// ValidateAPIKey probes the API with a known city to check the key is active.
func (c *OpenWeatherClient) ValidateAPIKey(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := c.buildRequest(ctx, "London,GB")
	if err != nil {
		return fmt.Errorf("build validation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: API key is invalid or not activated", ErrInvalidAPIKey)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("validation failed: HTTP %d", resp.StatusCode)
	}

	return nil
}
