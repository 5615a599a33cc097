package tools

import "context"

type Param struct {
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// Definition describes a callable tool. Immutable after registration.
type Definition struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	InputSchema map[string]Param `json:"input_schema"`
}

// Handler executes a tool call with already-validated arguments.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Registry owns the name → definition+handler mapping. Registration happens
// during process wiring, before serving begins, so reads need no locking.
type Registry struct {
	order    []Definition
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register fails with DuplicateToolError if the name is taken.
func (r *Registry) Register(def Definition, h Handler) error {
	if _, exists := r.handlers[def.Name]; exists {
		return &DuplicateToolError{Name: def.Name}
	}
	r.order = append(r.order, def)
	r.handlers[def.Name] = h
	return nil
}

// List returns the definitions in registration order.
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the definition and handler for a name, or UnknownToolError.
func (r *Registry) Get(name string) (Definition, Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return Definition{}, nil, &UnknownToolError{Name: name}
	}
	for _, def := range r.order {
		if def.Name == name {
			return def, h, nil
		}
	}
	return Definition{}, nil, &UnknownToolError{Name: name}
}
