package server

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nmorales-b/weather-agent/internal/tools"
)

// Failure kinds as they appear on the wire.
const (
	KindUnknownTool = "UnknownTool"
	KindValidation  = "ValidationError"
	KindHandler     = "HandlerError"
)

// Request is one tool invocation.
type Request struct {
	ToolName  string
	Arguments map[string]any
}

// Failure is the structured error half of a Result.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Result is the outcome of an invocation: exactly one of Payload or Failure
// is set. Invoke never lets an error or panic cross this boundary, so remote
// callers always get a well-formed response.
type Result struct {
	Payload map[string]any
	Failure *Failure
}

// Server exposes a registry of tools over a request/response protocol.
// Invocations are independent and may run concurrently; the registry is
// read-only once serving begins.
type Server struct {
	registry *tools.Registry
}

func New(registry *tools.Registry) *Server {
	return &Server{registry: registry}
}

// ListTools returns every registered definition, in registration order. No
// side effects, never fails.
func (s *Server) ListTools() []tools.Definition {
	return s.registry.List()
}

// Invoke validates the request against the tool's schema, runs the handler,
// and folds every failure mode into the Result.
func (s *Server) Invoke(ctx context.Context, req Request) Result {
	def, handler, err := s.registry.Get(req.ToolName)
	if err != nil {
		return Result{Failure: &Failure{Kind: KindUnknownTool, Message: err.Error()}}
	}

	if err := validateArguments(def, req.Arguments); err != nil {
		return Result{Failure: &Failure{Kind: KindValidation, Message: err.Error()}}
	}

	payload, err := s.callHandler(ctx, def.Name, handler, req.Arguments)
	if err != nil {
		slog.ErrorContext(ctx, "Tool handler failed", "tool", def.Name, "error", err)
		herr := &tools.HandlerError{Tool: def.Name, Err: err}
		return Result{Failure: &Failure{Kind: KindHandler, Message: herr.Error()}}
	}
	return Result{Payload: payload}
}

// callHandler runs the handler with a panic guard so a buggy tool degrades to
// a HandlerError instead of taking down the request.
func (s *Server) callHandler(ctx context.Context, name string, h tools.Handler, args map[string]any) (payload map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ctx, args)
}

// validateArguments checks required presence and type correctness, reporting
// the first offending field. Schema keys are walked in sorted order so the
// "first" field is deterministic.
func validateArguments(def tools.Definition, args map[string]any) error {
	names := make([]string, 0, len(def.InputSchema))
	for name := range def.InputSchema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		param := def.InputSchema[name]
		value, present := args[name]
		if !present {
			if param.Required {
				return &tools.ValidationError{Field: name, Reason: "required argument missing"}
			}
			continue
		}
		if err := checkType(name, param.Type, value); err != nil {
			return err
		}
	}

	for name := range args {
		if _, known := def.InputSchema[name]; !known {
			return &tools.ValidationError{Field: name, Reason: "unexpected argument"}
		}
	}
	return nil
}

func checkType(name, want string, value any) error {
	switch want {
	case "string":
		if _, ok := value.(string); !ok {
			return &tools.ValidationError{Field: name, Reason: "expected a string"}
		}
	case "integer":
		// JSON numbers decode as float64; accept only integral values.
		switch v := value.(type) {
		case float64:
			if v != float64(int64(v)) {
				return &tools.ValidationError{Field: name, Reason: "expected an integer"}
			}
		case int:
		default:
			return &tools.ValidationError{Field: name, Reason: "expected an integer"}
		}
	case "number":
		switch value.(type) {
		case float64, int:
		default:
			return &tools.ValidationError{Field: name, Reason: "expected a number"}
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return &tools.ValidationError{Field: name, Reason: "expected a boolean"}
		}
	default:
		return &tools.ValidationError{Field: name, Reason: "unsupported schema type " + want}
	}
	return nil
}
