package tools

import (
	"context"

	"github.com/nmorales-b/weather-agent/internal/weather"
)

// ForecastDefinition describes the get_forecast tool.
func ForecastDefinition() Definition {
	return Definition{
		Name:        "get_forecast",
		Description: "Get a daily weather forecast for a city, including chance of rain. Covers 1 to 7 days.",
		InputSchema: map[string]Param{
			"city": {
				Type:        "string",
				Required:    false,
				Description: "City name, e.g. 'Hyderabad' or 'New York'",
			},
			"days": {
				Type:        "integer",
				Required:    false,
				Description: "Number of days to forecast, default 3",
			},
		},
	}
}

func ForecastHandler(resolver *weather.Resolver) Handler {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		city, _ := args["city"].(string)
		days := 0
		// JSON numbers arrive as float64.
		if n, ok := args["days"].(float64); ok {
			days = int(n)
		}

		fc := resolver.ResolveForecast(ctx, city, days)
		entries := make([]map[string]any, 0, len(fc))
		for _, d := range fc {
			entries = append(entries, map[string]any{
				"date":                    d.Date,
				"max_temperature_celsius": d.MaxTemp,
				"min_temperature_celsius": d.MinTemp,
				"condition":               string(d.Condition),
				"chance_of_rain_percent":  d.ChanceOfRain,
				"source":                  string(d.Source),
			})
		}
		return map[string]any{"days": entries}, nil
	}
}
