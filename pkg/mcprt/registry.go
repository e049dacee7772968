package mcprt

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/spf13/cast"
)

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds t to the catalog. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool without a name")
	}
	seen := make(map[string]bool, len(t.Params))
	for _, p := range t.Params {
		if seen[p.Name] {
			return fmt.Errorf("%s: duplicate param %q", t.Name, p.Name)
		}
		seen[p.Name] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.tools[t.Name] = &t
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister is Register for static catalogs built at startup.
func (r *Registry) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// List returns the catalog in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.tools[name])
	}
	return out
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return Tool{}, false
	}
	return *t, true
}

// InputSchema renders the tool's parameters as a JSON Schema object.
func (t Tool) InputSchema() map[string]any {
	props := make(map[string]any, len(t.Params))
	required := []string{}
	for _, p := range t.Params {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// RawInputSchema is InputSchema encoded as JSON.
func (t Tool) RawInputSchema() json.RawMessage {
	data, _ := json.Marshal(t.InputSchema())
	return data
}

// Validate checks args against the declared schema of tool name. Required
// params must be present and non-null; present params must match their type
// and enum. Unknown extra arguments are ignored.
func (r *Registry) Validate(name string, args map[string]any) error {
	t, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	for _, p := range t.Params {
		v, present := args[p.Name]
		if !present || v == nil {
			if p.Required {
				return &ValidationError{Tool: name, Param: p.Name, Reason: "is required"}
			}
			continue
		}
		if !matchesType(p.Type, v) {
			return &ValidationError{Tool: name, Param: p.Name, Reason: "must be of type " + p.Type}
		}
		if len(p.Enum) > 0 {
			s, _ := v.(string)
			if !slices.Contains(p.Enum, s) {
				return &ValidationError{Tool: name, Param: p.Name, Reason: fmt.Sprintf("must be one of %v", p.Enum)}
			}
		}
	}
	return nil
}

func matchesType(typ string, v any) bool {
	switch typ {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		return isNumeric(v)
	case TypeInteger:
		if !isNumeric(v) {
			return false
		}
		f, err := cast.ToFloat64E(v)
		return err == nil && f == math.Trunc(f)
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeArray:
		_, ok := v.([]any)
		return ok
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	default:
		return true
	}
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}
