// File: lixenwraith/layers/type.go
package layers

import (
	"time"

	"github.com/spf13/cast"
)

// Typed accessors coerce the resolved value for a key, returning the
// type's zero value when the key is absent or the stored value cannot
// be converted. Present falsy values are distinguished from absence by
// Get itself, so GetBool on a stored false returns false because the
// value is false, not because the key is missing.

// GetString returns the value as a string. Absent keys return "".
// Numbers and booleans stringify to their literal text.
func (r *Registry) GetString(key string) string {
	return cast.ToString(r.Get(key))
}

// GetInt returns the value as an int. Absent keys and failed
// conversions return 0.
func (r *Registry) GetInt(key string) int {
	return cast.ToInt(r.Get(key))
}

// GetInt64 returns the value as an int64.
func (r *Registry) GetInt64(key string) int64 {
	return cast.ToInt64(r.Get(key))
}

// GetFloat64 returns the value as a float64.
func (r *Registry) GetFloat64(key string) float64 {
	return cast.ToFloat64(r.Get(key))
}

// GetBool returns the value as a bool. Stored booleans return as-is;
// strings are true iff they parse as a true boolean ("true", "TRUE",
// "1"); numbers follow generic truthiness (0 false, non-zero true).
// Anything unconvertible, including an absent key, returns false.
func (r *Registry) GetBool(key string) bool {
	return cast.ToBool(r.Get(key))
}

// GetDuration returns the value as a time.Duration, parsing strings
// like "250ms" and treating bare numbers as nanoseconds.
func (r *Registry) GetDuration(key string) time.Duration {
	return cast.ToDuration(r.Get(key))
}

// GetTime returns the value as a time.Time, parsing common layouts.
func (r *Registry) GetTime(key string) time.Time {
	return cast.ToTime(r.Get(key))
}

// GetSlice returns the value as a []any. Absent keys and non-array
// values return an empty slice.
func (r *Registry) GetSlice(key string) []any {
	out, err := cast.ToSliceE(r.Get(key))
	if err != nil || out == nil {
		return []any{}
	}
	return out
}

// GetStringSlice returns the value as a []string. Absent keys and
// non-array values return an empty slice. Stored values must already
// be arrays: cast's whitespace-splitting of plain strings is not
// applied here.
func (r *Registry) GetStringSlice(key string) []string {
	value := r.Get(key)
	switch value.(type) {
	case []any, []string:
	default:
		return []string{}
	}
	out, err := cast.ToStringSliceE(value)
	if err != nil || out == nil {
		return []string{}
	}
	return out
}

// GetStringMap returns the value as a map[string]any. Absent keys and
// values that are nil, arrays or scalars return an empty map.
func (r *Registry) GetStringMap(key string) map[string]any {
	out, err := cast.ToStringMapE(r.Get(key))
	if err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// GetStringMapString returns the value as a map[string]string. Absent
// keys and non-map values return an empty map.
func (r *Registry) GetStringMapString(key string) map[string]string {
	out, err := cast.ToStringMapStringE(r.Get(key))
	if err != nil || out == nil {
		return map[string]string{}
	}
	return out
}
