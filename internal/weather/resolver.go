package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Resolver turns a city name into weather data. It tries the live provider
// with bounded retries, then falls back to the deterministic generator. It
// never fails: a caller always gets a reading and can inspect Source to see
// which path produced it.
type Resolver struct {
	provider Provider
	mock     MockGenerator

	defaultCity    string
	retries        uint
	wait           time.Duration
	attemptTimeout time.Duration

	now func() time.Time
}

type ResolverOptions struct {
	// DefaultCity substitutes a missing or empty city argument.
	DefaultCity string
	// Retries is the number of extra attempts after the first one. The pause
	// between them is the fixed Wait, not exponential.
	Retries uint
	Wait    time.Duration
	// AttemptTimeout bounds each individual live call.
	AttemptTimeout time.Duration
}

// NewResolver builds a resolver over the given provider. A nil provider means
// no credential is configured and every resolution uses the generator.
func NewResolver(p Provider, opts ResolverOptions) *Resolver {
	if opts.DefaultCity == "" {
		opts.DefaultCity = "Hyderabad"
	}
	if opts.Wait <= 0 {
		opts.Wait = 400 * time.Millisecond
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 5 * time.Second
	}
	return &Resolver{
		provider:       p,
		defaultCity:    opts.DefaultCity,
		retries:        opts.Retries,
		wait:           opts.Wait,
		attemptTimeout: opts.AttemptTimeout,
		now:            time.Now,
	}
}

// Resolve returns a reading for the city, or for the default city when none
// is given. Live-path failures are absorbed here; the only signal the caller
// gets is Source on the reading.
func (r *Resolver) Resolve(ctx context.Context, city string) Reading {
	if city == "" {
		city = r.defaultCity
	}

	if r.provider == nil {
		return r.mock.Generate(city, r.now())
	}

	reading, err := backoff.Retry(ctx, func() (Reading, error) {
		actx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
		defer cancel()

		rd, err := r.provider.Current(actx, city)
		if err != nil {
			if !IsTransient(err) {
				return Reading{}, backoff.Permanent(err)
			}
			return Reading{}, err
		}
		return rd, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(r.wait)),
		backoff.WithMaxTries(r.retries+1),
	)
	if err != nil {
		slog.WarnContext(ctx, "Live weather lookup failed, using generated data", "city", city, "error", err)
		return r.mock.Generate(city, r.now())
	}
	return reading
}

// ResolveForecast is Resolve for multi-day forecasts, with the same retry and
// fallback discipline.
func (r *Resolver) ResolveForecast(ctx context.Context, city string, days int) []DailyForecast {
	if city == "" {
		city = r.defaultCity
	}
	if days <= 0 {
		days = 3
	}
	if days > 7 {
		days = 7
	}

	if r.provider == nil {
		return r.mock.Forecast(city, r.now(), days)
	}

	fc, err := backoff.Retry(ctx, func() ([]DailyForecast, error) {
		actx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
		defer cancel()

		fc, err := r.provider.Forecast(actx, city, days)
		if err != nil {
			if !IsTransient(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return fc, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(r.wait)),
		backoff.WithMaxTries(r.retries+1),
	)
	if err != nil || len(fc) == 0 {
		slog.WarnContext(ctx, "Live forecast lookup failed, using generated data", "city", city, "error", err)
		return r.mock.Forecast(city, r.now(), days)
	}
	return fc
}
