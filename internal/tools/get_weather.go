package tools

import (
	"context"
	"time"

	"github.com/nmorales-b/weather-agent/internal/weather"
)

// WeatherDefinition describes the get_weather tool. The city is optional:
// when absent the resolver substitutes its configured default.
func WeatherDefinition() Definition {
	return Definition{
		Name:        "get_weather",
		Description: "Get current weather for a city. Returns temperature, condition, humidity and whether the data is live or generated.",
		InputSchema: map[string]Param{
			"city": {
				Type:        "string",
				Required:    false,
				Description: "City name, e.g. 'Hyderabad' or 'New York'",
			},
		},
	}
}

// WeatherHandler bridges the tool call to the resolver. The resolver never
// fails, so neither does this handler.
func WeatherHandler(resolver *weather.Resolver) Handler {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		city, _ := args["city"].(string)
		reading := resolver.Resolve(ctx, city)
		return map[string]any{
			"city":                reading.City,
			"temperature_celsius": reading.Temperature,
			"condition":           string(reading.Condition),
			"humidity_percent":    reading.Humidity,
			"source":              string(reading.Source),
			"timestamp":           reading.Timestamp.Format(time.RFC3339),
		}, nil
	}
}
