package mcprt

import (
	"errors"
	"fmt"
	"sync"
)

// Param types, named after their JSON Schema counterparts.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Param declares one named argument of a tool.
type Param struct {
	Name        string
	Type        string
	Required    bool
	Description string
	Enum        []string
}

// Tool is a statically declared, schema-described operation. Its parameter list
// is both what tools/list advertises and what Validate enforces.
type Tool struct {
	Name        string
	Description string
	Params      []Param
}

// Registry holds the tool catalog in registration order.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
	order []string
}

// ErrToolNotFound is returned for names that were never registered.
var ErrToolNotFound = errors.New("tool not found")

// ValidationError reports an argument that does not satisfy a tool's schema.
type ValidationError struct {
	Tool   string
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: argument %q %s", e.Tool, e.Param, e.Reason)
}
