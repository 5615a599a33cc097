package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nmorales-b/weather-agent/internal/query"
	"github.com/nmorales-b/weather-agent/internal/server"
)

// Agent runs the query pipeline: free text → extraction → tool invocation →
// structured answer. The answer is the hand-off object for the external
// text-generation collaborator; no prose is produced here.
type Agent struct {
	interpreter *query.Interpreter
	server      *server.Server
}

// Answer pairs the extraction with the structured tool result. Exactly one of
// Reading or Failure is set; Forecast rides along for precipitation queries.
type Answer struct {
	Query    query.Extracted `json:"query"`
	Reading  map[string]any  `json:"reading,omitempty"`
	Forecast map[string]any  `json:"forecast,omitempty"`
	Failure  *server.Failure `json:"error,omitempty"`
}

func New(interpreter *query.Interpreter, srv *server.Server) *Agent {
	return &Agent{interpreter: interpreter, server: srv}
}

// Process resolves one free-text query end to end. Extraction never fails; a
// text with no recognizable city still produces an answer for the configured
// default city.
func (a *Agent) Process(ctx context.Context, text string) Answer {
	extracted := a.interpreter.Interpret(text)
	slog.InfoContext(ctx, "Query interpreted",
		"intent", extracted.Intent,
		"city", extracted.City,
		"confidence", extracted.Confidence,
	)

	args := map[string]any{}
	if extracted.City != "" {
		args["city"] = extracted.City
	}

	result := a.server.Invoke(ctx, server.Request{ToolName: "get_weather", Arguments: args})
	answer := Answer{Query: extracted, Reading: result.Payload, Failure: result.Failure}

	// Precipitation questions get the daily outlook on top of the current
	// reading; a forecast failure does not spoil the answer.
	if extracted.Intent == query.IntentForecastPrecipitation && result.Failure == nil {
		fc := a.server.Invoke(ctx, server.Request{ToolName: "get_forecast", Arguments: args})
		answer.Forecast = fc.Payload
	}
	return answer
}

// Handler is the HTTP binding of the pipeline: POST {"query": "..."}.
func (a *Agent) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Query == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": server.Failure{Kind: server.KindValidation, Message: "invalid argument \"query\": required and non-empty"},
			})
			return
		}

		answer := a.Process(r.Context(), body.Query)
		status := http.StatusOK
		if answer.Failure != nil {
			status = http.StatusInternalServerError
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(answer)
	}
}
