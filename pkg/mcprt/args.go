package mcprt

import "github.com/spf13/cast"

// Args wraps a call's argument object. Accessors assume Validate already ran,
// so they return zero values rather than errors.
type Args map[string]any

// Has reports whether key is present and non-null.
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

func (a Args) String(key string) string {
	v, _ := a[key].(string)
	return v
}

func (a Args) Float(key string) float64 {
	return cast.ToFloat64(a[key])
}

func (a Args) Int(key string) int {
	return cast.ToInt(a[key])
}

func (a Args) Slice(key string) []any {
	v, _ := a[key].([]any)
	return v
}
