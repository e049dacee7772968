package mcprt

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	reg.MustRegister(
		Tool{
			Name:        "calculate",
			Description: "arithmetic",
			Params: []Param{
				{Name: "operation", Type: TypeString, Required: true, Enum: []string{"add", "divide"}},
				{Name: "a", Type: TypeNumber, Required: true},
				{Name: "b", Type: TypeNumber, Required: true},
			},
		},
		Tool{
			Name: "db_query",
			Params: []Param{
				{Name: "sql", Type: TypeString, Required: true},
				{Name: "params", Type: TypeArray},
				{Name: "limit", Type: TypeInteger},
				{Name: "strict", Type: TypeBoolean},
				{Name: "filter", Type: TypeObject},
			},
		},
		Tool{Name: "get_users"},
	)
	return reg
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := testRegistry(t)
	err := reg.Register(Tool{Name: "calculate"})
	assert.Error(t, err)

	err = reg.Register(Tool{Name: "x", Params: []Param{{Name: "a"}, {Name: "a"}}})
	assert.Error(t, err)

	assert.Error(t, reg.Register(Tool{}))
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	reg := testRegistry(t)
	var names []string
	for _, tool := range reg.List() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"calculate", "db_query", "get_users"}, names)
}

func TestInputSchema(t *testing.T) {
	reg := testRegistry(t)
	tool, ok := reg.Get("calculate")
	require.True(t, ok)

	var schema struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	require.NoError(t, json.Unmarshal(tool.RawInputSchema(), &schema))
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"operation", "a", "b"}, schema.Required)
	assert.Equal(t, "number", schema.Properties["a"]["type"])
	assert.Equal(t, []any{"add", "divide"}, schema.Properties["operation"]["enum"])

	empty, _ := reg.Get("get_users")
	assert.Equal(t, []string{}, empty.InputSchema()["required"])
}

func TestValidate(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		param   string
		wantErr bool
	}{
		{"ok", "calculate", map[string]any{"operation": "add", "a": 1.0, "b": 2.0}, "", false},
		{"json number", "calculate", map[string]any{"operation": "add", "a": json.Number("1.5"), "b": 2}, "", false},
		{"missing", "calculate", map[string]any{"operation": "add", "a": 1.0}, "b", true},
		{"null required", "calculate", map[string]any{"operation": "add", "a": 1.0, "b": nil}, "b", true},
		{"string for number", "calculate", map[string]any{"operation": "add", "a": "1", "b": 2.0}, "a", true},
		{"enum", "calculate", map[string]any{"operation": "modulo", "a": 1.0, "b": 2.0}, "operation", true},
		{"optional absent", "db_query", map[string]any{"sql": "select 1"}, "", false},
		{"optional null", "db_query", map[string]any{"sql": "select 1", "params": nil}, "", false},
		{"array", "db_query", map[string]any{"sql": "select 1", "params": []any{1.0, "x"}}, "", false},
		{"array wrong", "db_query", map[string]any{"sql": "select 1", "params": "1,2"}, "params", true},
		{"integer", "db_query", map[string]any{"sql": "select 1", "limit": 10.0}, "", false},
		{"integer fractional", "db_query", map[string]any{"sql": "select 1", "limit": 1.5}, "limit", true},
		{"boolean", "db_query", map[string]any{"sql": "select 1", "strict": "yes"}, "strict", true},
		{"object", "db_query", map[string]any{"sql": "select 1", "filter": map[string]any{}}, "", false},
		{"extra ignored", "get_users", map[string]any{"anything": true}, "", false},
		{"nil args", "get_users", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Validate(tt.tool, tt.args)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.param, verr.Param)
			assert.Equal(t, tt.tool, verr.Tool)
		})
	}
}

func TestValidateUnknownTool(t *testing.T) {
	reg := testRegistry(t)
	err := reg.Validate("nope", nil)
	assert.True(t, errors.Is(err, ErrToolNotFound))
	assert.Contains(t, err.Error(), "nope")
}

func TestArgs(t *testing.T) {
	args := Args{"s": "x", "f": 2.5, "i": 3.0, "n": json.Number("7"), "arr": []any{1.0}, "nil": nil}
	assert.True(t, args.Has("s"))
	assert.False(t, args.Has("nil"))
	assert.False(t, args.Has("missing"))
	assert.Equal(t, "x", args.String("s"))
	assert.Equal(t, "", args.String("f"))
	assert.Equal(t, 2.5, args.Float("f"))
	assert.Equal(t, 3, args.Int("i"))
	assert.Equal(t, 7.0, args.Float("n"))
	assert.Len(t, args.Slice("arr"), 1)
	assert.Nil(t, args.Slice("s"))
}
