package models

import "time"

// Observation is the current weather for one city at query time.
// Temperature is passed through in whatever unit the provider returned.
type Observation struct {
	Location      string    `json:"location"`
	Conditions    string    `json:"conditions"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Pressure      float64   `json:"pressure"`
	WindSpeed     float64   `json:"windSpeed"`
	CorrelationID string    `json:"correlationId,omitempty"`
	FetchedAt     time.Time `json:"fetchedAt"`
}
