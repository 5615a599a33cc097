package agent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nmorales-b/weather-agent/internal/agent"
	"github.com/nmorales-b/weather-agent/internal/query"
	"github.com/nmorales-b/weather-agent/internal/server"
	"github.com/nmorales-b/weather-agent/internal/tools"
	"github.com/nmorales-b/weather-agent/internal/weather"
)

// newPipeline wires the whole stack with no provider key, as the process
// would come up without credentials: every reading is generated.
func newPipeline(t *testing.T) *agent.Agent {
	t.Helper()

	resolver := weather.NewResolver(nil, weather.ResolverOptions{
		DefaultCity: "Hyderabad",
		Retries:     2,
		Wait:        time.Millisecond,
	})

	registry := tools.NewRegistry()
	if err := registry.Register(tools.WeatherDefinition(), tools.WeatherHandler(resolver)); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(tools.ForecastDefinition(), tools.ForecastHandler(resolver)); err != nil {
		t.Fatal(err)
	}

	return agent.New(query.NewInterpreter(query.DefaultGazetteer()), server.New(registry))
}

func TestAgent_Process_EndToEnd(t *testing.T) {
	a := newPipeline(t)

	answer := a.Process(context.Background(), "Is it raining in London today?")

	if answer.Query.City != "London" {
		t.Errorf("extracted city = %q, want London", answer.Query.City)
	}
	if answer.Query.Intent != query.IntentForecastPrecipitation {
		t.Errorf("intent = %q, want %q", answer.Query.Intent, query.IntentForecastPrecipitation)
	}
	if answer.Failure != nil {
		t.Fatalf("unexpected failure: %+v", answer.Failure)
	}
	if got := answer.Reading["city"]; got != "London" {
		t.Errorf("reading city = %v, want London", got)
	}
	if got := answer.Reading["source"]; got != "mock" {
		t.Errorf("reading source = %v, want mock (no key configured)", got)
	}
	if answer.Forecast == nil {
		t.Error("precipitation query should carry a forecast")
	}
}

func TestAgent_Process_NoCityDegradesToDefault(t *testing.T) {
	a := newPipeline(t)

	answer := a.Process(context.Background(), "What is the weather like?")

	if answer.Query.City != "" {
		t.Errorf("extracted city = %q, want empty", answer.Query.City)
	}
	if answer.Query.Confidence != query.ConfidenceLow {
		t.Errorf("confidence = %q, want low", answer.Query.Confidence)
	}
	if answer.Failure != nil {
		t.Fatalf("unexpected failure: %+v", answer.Failure)
	}
	if got := answer.Reading["city"]; got != "Hyderabad" {
		t.Errorf("reading city = %v, want the configured default", got)
	}
	if answer.Forecast != nil {
		t.Error("current-weather query should not carry a forecast")
	}
}

func TestAgent_Handler(t *testing.T) {
	ts := httptest.NewServer(newPipeline(t).Handler())
	defer ts.Close()

	t.Run("answers a weather question", func(t *testing.T) {
		res, err := http.Post(ts.URL, "application/json",
			strings.NewReader(`{"query": "How hot is it in Chennai?"}`))
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", res.StatusCode)
		}

		var answer struct {
			Query struct {
				City   string `json:"candidate_city"`
				Intent string `json:"intent"`
			} `json:"query"`
			Reading map[string]any `json:"reading"`
		}
		if err := json.NewDecoder(res.Body).Decode(&answer); err != nil {
			t.Fatal(err)
		}
		if answer.Query.City != "Chennai" {
			t.Errorf("city = %q, want Chennai", answer.Query.City)
		}
		if answer.Query.Intent != string(query.IntentCurrentWeather) {
			t.Errorf("intent = %q, want current_weather", answer.Query.Intent)
		}
		if answer.Reading["source"] != "mock" {
			t.Errorf("source = %v, want mock", answer.Reading["source"])
		}
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		res, err := http.Post(ts.URL, "application/json", strings.NewReader(`{}`))
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", res.StatusCode)
		}
	})
}
