package query

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Intent string

const (
	IntentCurrentWeather        Intent = "current_weather"
	IntentForecastPrecipitation Intent = "forecast_precipitation"
	IntentUnknown               Intent = "unknown"
)

type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// Extracted is the structured form of one free-text query. Created per
// message, consumed immediately.
type Extracted struct {
	RawText    string     `json:"raw_text"`
	City       string     `json:"candidate_city,omitempty"`
	Intent     Intent     `json:"intent"`
	Confidence Confidence `json:"confidence"`
}

// Interpreter extracts a city candidate and an intent from free text. It is a
// pure rule-based extractor: same text in, same extraction out, no model. It
// never fails; text it cannot make sense of comes back with an empty city and
// low confidence.
type Interpreter struct {
	gazetteer *Gazetteer
}

func NewInterpreter(g *Gazetteer) *Interpreter {
	if g == nil {
		g = DefaultGazetteer()
	}
	return &Interpreter{gazetteer: g}
}

// Keyword groups checked in priority order: precipitation words trump the
// generic weather words.
var (
	precipitationWords = []string{"rain", "precipitation", "snow"}
	weatherWords       = []string{"weather", "temperature", "climate", "hot", "cold"}
)

// cityPattern matches "in <Capitalized...>" / "for <Capitalized...>" against
// the original-cased text. The capture is a contiguous run of capitalized
// tokens; punctuation ends the run by construction.
var cityPattern = regexp.MustCompile(`\b(?:[Ii]n|[Ff]or)\s+([A-Z][A-Za-z-]*(?:\s+[A-Z][A-Za-z-]*)*)`)

var temporalWords = map[string]bool{
	"today":    true,
	"tomorrow": true,
	"now":      true,
}

func (i *Interpreter) Interpret(text string) Extracted {
	out := Extracted{
		RawText:    text,
		Intent:     classifyIntent(normalize(text)),
		Confidence: ConfidenceLow,
	}

	if city, ok := extractPrepositional(text); ok {
		out.City = city
		out.Confidence = ConfidenceHigh
		return out
	}
	if city, ok := i.gazetteer.Lookup(normalize(text)); ok {
		// A cases.Caser is stateful, so build one per call.
		out.City = cases.Title(language.Und).String(city)
		out.Confidence = ConfidenceHigh
		return out
	}
	return out
}

func classifyIntent(normalized string) Intent {
	for _, w := range precipitationWords {
		if strings.Contains(normalized, w) {
			return IntentForecastPrecipitation
		}
	}
	for _, w := range weatherWords {
		if strings.Contains(normalized, w) {
			return IntentCurrentWeather
		}
	}
	return IntentUnknown
}

// extractPrepositional finds the last "in/for <City>" match. Trailing temporal
// words are trimmed off the capitalized run.
func extractPrepositional(text string) (string, bool) {
	matches := cityPattern.FindAllStringSubmatch(text, -1)
	for n := len(matches) - 1; n >= 0; n-- {
		tokens := strings.Fields(matches[n][1])
		for len(tokens) > 0 && temporalWords[strings.ToLower(tokens[len(tokens)-1])] {
			tokens = tokens[:len(tokens)-1]
		}
		if len(tokens) > 0 {
			return strings.Join(tokens, " "), true
		}
	}
	return "", false
}

// normalize lowercases and strips punctuation, keeping hyphens that sit
// inside a word.
func normalize(text string) string {
	runes := []rune(strings.ToLower(text))
	var b strings.Builder
	b.Grow(len(runes))
	for idx, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '-' && idx > 0 && idx < len(runes)-1 &&
			unicode.IsLetter(runes[idx-1]) && unicode.IsLetter(runes[idx+1]):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
