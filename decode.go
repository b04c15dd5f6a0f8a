// File: lixenwraith/layers/decode.go
package layers

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Unmarshal decodes the fully resolved settings into target, which must
// be a non-nil pointer to a struct or map. Fields are matched by the
// registry's tag name ("mapstructure" unless configured otherwise),
// with weak typing so string env values convert into numeric and
// boolean fields, durations parse from strings, and comma-separated
// strings split into slices.
func (r *Registry) Unmarshal(target any) error {
	return r.decode(r.AllSettings(), "", target)
}

// UnmarshalKey decodes the subtree at key into target. An absent key
// decodes an empty tree; a key resolving to a non-tree value is an
// error.
func (r *Registry) UnmarshalKey(key string, target any) error {
	value, found, err := r.find(key)
	if err != nil {
		return err
	}
	if !found {
		return r.decode(map[string]any{}, key, target)
	}
	tree, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("key %q does not refer to a map section (got %T)", key, value)
	}
	return r.decode(tree, key, target)
}

func (r *Registry) decode(tree map[string]any, key string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be a non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          r.tagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(tree); err != nil {
		if key != "" {
			return fmt.Errorf("failed to decode key %q into %T: %w", key, target, err)
		}
		return fmt.Errorf("failed to decode settings into %T: %w", target, err)
	}
	return nil
}
