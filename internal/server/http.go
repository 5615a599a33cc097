package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nmorales-b/weather-agent/internal/tools"
)

// Routes mounts the HTTP+JSON binding of the tool protocol.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc("/tools/list", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/tools/call", s.handleCall).Methods(http.MethodPost)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.ListTools()})
}

// callBody accepts both field spellings for the tool name: "tool_name" per
// the protocol, and "name" for compatibility with older clients.
type callBody struct {
	ToolName  string         `json:"tool_name"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var body callBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, Failure{Kind: KindValidation, Message: "malformed request body: " + err.Error()})
		return
	}

	name := body.ToolName
	if name == "" {
		name = body.Name
	}
	if name == "" {
		verr := &tools.ValidationError{Field: "tool_name", Reason: "required argument missing"}
		writeFailure(w, Failure{Kind: KindValidation, Message: verr.Error()})
		return
	}

	args := body.Arguments
	if args == nil {
		args = map[string]any{}
	}

	result := s.Invoke(r.Context(), Request{ToolName: name, Arguments: args})
	if result.Failure != nil {
		writeFailure(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Payload)
}

func writeFailure(w http.ResponseWriter, f Failure) {
	writeJSON(w, statusFor(f.Kind), map[string]any{"error": f})
}

func statusFor(kind string) int {
	switch kind {
	case KindUnknownTool:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
