// Package presenter turns an Observation into the text summary the CLI prints.
//
// Band and Bucket are tags, not colors or glyphs: the Renderer decides what a
// tag looks like on the current terminal.
package presenter

import (
	"fmt"

	"github.com/kjstillabower/weather-station/internal/models"
)

// Band is a temperature range used to pick a display marker.
type Band int

const (
	BandFreezing Band = iota
	BandCold
	BandMild
	BandWarm
	BandHot
)

func (b Band) String() string {
	switch b {
	case BandFreezing:
		return "freezing"
	case BandCold:
		return "cold"
	case BandMild:
		return "mild"
	case BandWarm:
		return "warm"
	case BandHot:
		return "hot"
	}
	return fmt.Sprintf("band(%d)", int(b))
}

// Marker returns the emoji shown before the temperature.
func (b Band) Marker() string {
	switch b {
	case BandFreezing:
		return "❄️"
	case BandCold:
		return "☁️"
	case BandMild:
		return "🌥️"
	case BandWarm:
		return "🌤️"
	}
	return "🌞"
}

// bandRules are checked in order; each upper bound is exclusive, so a band
// covers [previous bound, bound).
var bandRules = []struct {
	match func(t float64) bool
	band  Band
}{
	{func(t float64) bool { return t < 0 }, BandFreezing},
	{func(t float64) bool { return t < 10 }, BandCold},
	{func(t float64) bool { return t < 20 }, BandMild},
	{func(t float64) bool { return t < 30 }, BandWarm},
}

// BandFor returns the band for t in whatever unit the provider used.
// Anything no rule claims (30 and above, NaN) is BandHot.
func BandFor(t float64) Band {
	for _, r := range bandRules {
		if r.match(t) {
			return r.band
		}
	}
	return BandHot
}

// Bucket groups provider condition descriptions by display color.
type Bucket int

const (
	BucketDefault Bucket = iota
	BucketClear
	BucketCloudy
	BucketObscured
	BucketPrecipitation
)

func (b Bucket) String() string {
	switch b {
	case BucketClear:
		return "clear"
	case BucketCloudy:
		return "cloudy"
	case BucketObscured:
		return "obscured"
	case BucketPrecipitation:
		return "precipitation"
	}
	return "default"
}

// bucketRules match the provider's description exactly, first hit wins.
var bucketRules = []struct {
	bucket  Bucket
	phrases []string
}{
	{BucketClear, []string{"clear sky"}},
	{BucketCloudy, []string{"few clouds", "scattered clouds", "broken clouds"}},
	{BucketObscured, []string{"overcast clouds", "mist", "haze", "smoke", "sand", "dust", "fog", "squalls"}},
	{BucketPrecipitation, []string{"shower rain", "rain", "thunderstorm", "snow"}},
}

// BucketFor returns the bucket for a condition description. Unknown
// descriptions are BucketDefault.
func BucketFor(description string) Bucket {
	for _, r := range bucketRules {
		for _, p := range r.phrases {
			if description == p {
				return r.bucket
			}
		}
	}
	return BucketDefault
}

// Summary is a formatted observation plus the tags chosen for it.
type Summary struct {
	Text   string
	Band   Band
	Bucket Bucket
}

// Format builds the multi-line summary for obs. The temperature is printed as
// received and labeled °C; with the provider's default units it is Kelvin.
func Format(obs models.Observation) Summary {
	band := BandFor(obs.Temperature)
	text := fmt.Sprintf(
		"Weather in %s: %s\n"+
			"> Temperature: %s %.1f°C,\n"+
			"> Humidity: %.1f%%,\n"+
			"> Pressure: %.1f hPa,\n"+
			"> Wind Speed: %.1f m/s",
		obs.Location,
		obs.Conditions,
		band.Marker(),
		obs.Temperature,
		obs.Humidity,
		obs.Pressure,
		obs.WindSpeed,
	)
	return Summary{
		Text:   text,
		Band:   band,
		Bucket: BucketFor(obs.Conditions),
	}
}
