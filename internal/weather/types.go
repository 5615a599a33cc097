package weather

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Condition is the closed vocabulary a reading may carry. Provider strings
// outside this set are mapped to ConditionUnknown, never passed through raw.
type Condition string

const (
	ConditionClear   Condition = "clear"
	ConditionClouds  Condition = "clouds"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
	ConditionUnknown Condition = "unknown"
)

// Source tells the caller whether a reading came from the live provider or
// from the deterministic generator.
type Source string

const (
	SourceLive Source = "live"
	SourceMock Source = "mock"
)

// Reading is the structured result of one resolution. It is produced per call
// and never persisted.
type Reading struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature_celsius"`
	Condition   Condition `json:"condition"`
	Humidity    int       `json:"humidity_percent"`
	Source      Source    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

// DailyForecast is one day of an aggregated forecast.
type DailyForecast struct {
	Date         string    `json:"date"`
	MaxTemp      float64   `json:"max_temperature_celsius"`
	MinTemp      float64   `json:"min_temperature_celsius"`
	Condition    Condition `json:"condition"`
	ChanceOfRain int       `json:"chance_of_rain_percent"`
	Source       Source    `json:"source"`
}

// CanonicalCity trims and title-cases a city name so "hyderabad", "HYDERABAD"
// and "Hyderabad" all refer to the same place. A Caser is stateful, so one is
// built per call rather than shared.
func CanonicalCity(city string) string {
	return cases.Title(language.Und).String(strings.ToLower(strings.TrimSpace(city)))
}

// conditionFromProvider maps the live provider's condition vocabulary onto the
// closed enum. OpenWeatherMap uses a small fixed set in weather[0].main.
func conditionFromProvider(main string) Condition {
	switch strings.ToLower(strings.TrimSpace(main)) {
	case "clear":
		return ConditionClear
	case "clouds":
		return ConditionClouds
	case "rain", "drizzle":
		return ConditionRain
	case "snow":
		return ConditionSnow
	case "thunderstorm":
		return ConditionStorm
	case "mist", "fog", "haze", "smoke":
		return ConditionMist
	default:
		return ConditionUnknown
	}
}
