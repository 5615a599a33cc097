package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// Provider is the live weather data capability. Implementations must be safe
// for concurrent use.
type Provider interface {
	Current(ctx context.Context, city string) (Reading, error)
	Forecast(ctx context.Context, city string, days int) ([]DailyForecast, error)
}

// ProviderError classifies a live-provider failure. Transient failures
// (timeouts, 5xx, connection resets) are retried; terminal ones (4xx: unknown
// city, bad key) abort the live path immediately.
type ProviderError struct {
	StatusCode int
	Message    string
	Transient  bool
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider: %s (http %d)", e.Message, e.StatusCode)
	}
	return "provider: " + e.Message
}

// IsTransient reports whether err is a retryable provider failure. Network
// errors without a status code count as transient.
func IsTransient(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Transient
	}
	return true
}

// OpenWeatherMap reaches the OpenWeatherMap REST API. The embedded client owns
// a bounded connection pool and the per-request timeout.
type OpenWeatherMap struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

const defaultBaseURL = "https://api.openweathermap.org"

func NewOpenWeatherMap(apiKey, baseURL string, timeout time.Duration) *OpenWeatherMap {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenWeatherMap{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        8,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (p *OpenWeatherMap) Current(ctx context.Context, city string) (Reading, error) {
	endpoint := fmt.Sprintf(
		"%s/data/2.5/weather?q=%s&appid=%s&units=metric",
		p.baseURL,
		url.QueryEscape(city),
		url.QueryEscape(p.apiKey),
	)

	var payload struct {
		Name    string `json:"name"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
	}
	if err := p.get(ctx, endpoint, &payload); err != nil {
		return Reading{}, err
	}

	cond := ConditionUnknown
	if len(payload.Weather) > 0 {
		cond = conditionFromProvider(payload.Weather[0].Main)
	}

	name := payload.Name
	if name == "" {
		name = CanonicalCity(city)
	}

	return Reading{
		City:        name,
		Temperature: payload.Main.Temp,
		Condition:   cond,
		Humidity:    payload.Main.Humidity,
		Source:      SourceLive,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// Forecast aggregates the 5-day/3-hour endpoint into per-day entries. days is
// clamped to what the endpoint can cover.
func (p *OpenWeatherMap) Forecast(ctx context.Context, city string, days int) ([]DailyForecast, error) {
	if days <= 0 {
		days = 3
	}
	if days > 5 {
		days = 5
	}

	endpoint := fmt.Sprintf(
		"%s/data/2.5/forecast?q=%s&appid=%s&units=metric",
		p.baseURL,
		url.QueryEscape(city),
		url.QueryEscape(p.apiKey),
	)

	var payload struct {
		List []struct {
			DtTxt   string `json:"dt_txt"`
			Weather []struct {
				Main string `json:"main"`
			} `json:"weather"`
			Main struct {
				TempMax  float64 `json:"temp_max"`
				TempMin  float64 `json:"temp_min"`
				Humidity int     `json:"humidity"`
			} `json:"main"`
			Pop float64 `json:"pop"`
		} `json:"list"`
	}
	if err := p.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	type bucket struct {
		max, min float64
		pop      float64
		cond     Condition
	}
	byDay := map[string]*bucket{}
	for _, slot := range payload.List {
		if len(slot.DtTxt) < len(time.DateOnly) {
			continue
		}
		date := slot.DtTxt[:len(time.DateOnly)]
		b, ok := byDay[date]
		if !ok {
			b = &bucket{max: slot.Main.TempMax, min: slot.Main.TempMin}
			byDay[date] = b
		}
		if slot.Main.TempMax > b.max {
			b.max = slot.Main.TempMax
		}
		if slot.Main.TempMin < b.min {
			b.min = slot.Main.TempMin
		}
		if slot.Pop > b.pop {
			b.pop = slot.Pop
		}
		if len(slot.Weather) > 0 && b.cond == "" {
			b.cond = conditionFromProvider(slot.Weather[0].Main)
		}
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > days {
		dates = dates[:days]
	}

	out := make([]DailyForecast, 0, len(dates))
	for _, d := range dates {
		b := byDay[d]
		cond := b.cond
		if cond == "" {
			cond = ConditionUnknown
		}
		out = append(out, DailyForecast{
			Date:         d,
			MaxTemp:      b.max,
			MinTemp:      b.min,
			Condition:    cond,
			ChanceOfRain: int(b.pop * 100),
			Source:       SourceLive,
		})
	}
	return out, nil
}

func (p *OpenWeatherMap) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &ProviderError{Message: err.Error(), Transient: false}
	}

	res, err := p.client.Do(req)
	if err != nil {
		return &ProviderError{Message: err.Error(), Transient: true}
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		msg := e.Message
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return &ProviderError{
			StatusCode: res.StatusCode,
			Message:    msg,
			Transient:  res.StatusCode >= 500,
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &ProviderError{Message: "malformed response: " + err.Error(), Transient: false}
	}
	return nil
}
