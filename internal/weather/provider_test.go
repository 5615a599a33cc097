package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenWeatherMap_Current(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "London" {
			t.Errorf("q = %q, want %q", got, "London")
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "London",
			"weather": [{"main": "Rain", "description": "light rain"}],
			"main": {"temp": 17.4, "humidity": 82}
		}`))
	}))
	defer ts.Close()

	p := NewOpenWeatherMap("test-key", ts.URL, 2*time.Second)
	got, err := p.Current(context.Background(), "London")
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	if got.City != "London" {
		t.Errorf("city = %q, want %q", got.City, "London")
	}
	if got.Temperature != 17.4 {
		t.Errorf("temperature = %v, want 17.4", got.Temperature)
	}
	if got.Condition != ConditionRain {
		t.Errorf("condition = %q, want %q", got.Condition, ConditionRain)
	}
	if got.Humidity != 82 {
		t.Errorf("humidity = %d, want 82", got.Humidity)
	}
	if got.Source != SourceLive {
		t.Errorf("source = %q, want %q", got.Source, SourceLive)
	}
}

func TestOpenWeatherMap_ErrorClassification(t *testing.T) {
	for _, tc := range []struct {
		name          string
		status        int
		wantTransient bool
	}{
		{"not found is terminal", http.StatusNotFound, false},
		{"bad key is terminal", http.StatusUnauthorized, false},
		{"server error is transient", http.StatusServiceUnavailable, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"message": "nope"}`))
			}))
			defer ts.Close()

			p := NewOpenWeatherMap("test-key", ts.URL, 2*time.Second)
			_, err := p.Current(context.Background(), "London")
			if err == nil {
				t.Fatal("Current() expected error, got nil")
			}

			var pe *ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("error type = %T, want *ProviderError", err)
			}
			if pe.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", pe.StatusCode, tc.status)
			}
			if pe.Transient != tc.wantTransient {
				t.Errorf("transient = %v, want %v", pe.Transient, tc.wantTransient)
			}
			if IsTransient(err) != tc.wantTransient {
				t.Errorf("IsTransient() = %v, want %v", IsTransient(err), tc.wantTransient)
			}
		})
	}
}

func TestOpenWeatherMap_ConnectionErrorIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // nothing listening anymore

	p := NewOpenWeatherMap("test-key", ts.URL, time.Second)
	_, err := p.Current(context.Background(), "London")
	if err == nil {
		t.Fatal("Current() expected error, got nil")
	}
	if !IsTransient(err) {
		t.Errorf("connection error should be transient, got %v", err)
	}
}

func TestOpenWeatherMap_ForecastAggregatesDays(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/forecast" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list": [
			{"dt_txt": "2026-08-30 09:00:00", "weather": [{"main": "Clouds"}], "main": {"temp_max": 21, "temp_min": 14, "humidity": 60}, "pop": 0.2},
			{"dt_txt": "2026-08-30 15:00:00", "weather": [{"main": "Rain"}], "main": {"temp_max": 24, "temp_min": 17, "humidity": 70}, "pop": 0.8},
			{"dt_txt": "2026-08-31 09:00:00", "weather": [{"main": "Clear"}], "main": {"temp_max": 26, "temp_min": 15, "humidity": 40}, "pop": 0}
		]}`))
	}))
	defer ts.Close()

	p := NewOpenWeatherMap("test-key", ts.URL, 2*time.Second)
	fc, err := p.Forecast(context.Background(), "Berlin", 5)
	if err != nil {
		t.Fatalf("Forecast() error: %v", err)
	}
	if len(fc) != 2 {
		t.Fatalf("forecast has %d days, want 2", len(fc))
	}

	first := fc[0]
	if first.Date != "2026-08-30" {
		t.Errorf("date = %q, want 2026-08-30", first.Date)
	}
	if first.MaxTemp != 24 || first.MinTemp != 14 {
		t.Errorf("temps = %.0f/%.0f, want 24/14", first.MaxTemp, first.MinTemp)
	}
	if first.ChanceOfRain != 80 {
		t.Errorf("chance of rain = %d, want 80", first.ChanceOfRain)
	}
	if first.Source != SourceLive {
		t.Errorf("source = %q, want %q", first.Source, SourceLive)
	}
}
