package weather

import (
	"hash/fnv"
	"time"
)

// MockGenerator produces synthetic readings when live data is unavailable.
// generate(city, day) is a pure function: the seed is a stable hash of the
// canonical city name and the ISO calendar day, so repeated queries on the
// same day see the same weather.
type MockGenerator struct{}

// Value tables indexed from the seed, keyed per condition so the
// combinations stay plausible.
var (
	mockConditions = []Condition{
		ConditionClear,
		ConditionClouds,
		ConditionRain,
		ConditionSnow,
		ConditionStorm,
		ConditionMist,
	}

	mockTempRange = map[Condition][2]float64{
		ConditionClear:  {18, 36},
		ConditionClouds: {12, 28},
		ConditionRain:   {10, 26},
		ConditionSnow:   {-8, 4},
		ConditionStorm:  {14, 30},
		ConditionMist:   {4, 18},
	}

	mockHumidityRange = map[Condition][2]int{
		ConditionClear:  {25, 55},
		ConditionClouds: {45, 75},
		ConditionRain:   {70, 98},
		ConditionSnow:   {60, 90},
		ConditionStorm:  {75, 98},
		ConditionMist:   {80, 100},
	}
)

// Generate returns the synthetic reading for a city on a given day. Input city
// casing does not matter; the result is byte-identical across calls.
func (MockGenerator) Generate(city string, day time.Time) Reading {
	canonical := CanonicalCity(city)
	seed := mockSeed(canonical, day)

	cond := mockConditions[seed%uint64(len(mockConditions))]

	tr := mockTempRange[cond]
	// Tenth-of-a-degree steps across the range, derived from the seed.
	steps := uint64((tr[1]-tr[0])*10) + 1
	temp := tr[0] + float64((seed/7)%steps)/10

	hr := mockHumidityRange[cond]
	humidity := hr[0] + int((seed/131)%uint64(hr[1]-hr[0]+1))

	// The timestamp is rebuilt from the same calendar date that keyed the
	// seed; truncating the instant in UTC would shift the date for non-UTC
	// callers near midnight.
	y, m, d := day.Date()

	return Reading{
		City:        canonical,
		Temperature: temp,
		Condition:   cond,
		Humidity:    humidity,
		Source:      SourceMock,
		Timestamp:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

// Forecast returns days consecutive synthetic entries starting at day.
func (g MockGenerator) Forecast(city string, day time.Time, days int) []DailyForecast {
	out := make([]DailyForecast, 0, days)
	for i := 0; i < days; i++ {
		d := day.AddDate(0, 0, i)
		r := g.Generate(city, d)
		out = append(out, DailyForecast{
			Date:         d.Format(time.DateOnly),
			MaxTemp:      r.Temperature,
			MinTemp:      r.Temperature - 6,
			Condition:    r.Condition,
			ChanceOfRain: chanceOfRain(r.Condition, r.Humidity),
			Source:       SourceMock,
		})
	}
	return out
}

func mockSeed(canonicalCity string, day time.Time) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(canonicalCity))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(day.Format(time.DateOnly)))
	return h.Sum64()
}

func chanceOfRain(c Condition, humidity int) int {
	switch c {
	case ConditionRain, ConditionStorm:
		return humidity
	case ConditionClouds, ConditionMist:
		return humidity / 2
	default:
		return 0
	}
}
