// File: lixenwraith/layers/validate.go
package layers

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// StructValidator builds a ValidatorFunc from a struct prototype
// carrying `validate` tags. Each call decodes the candidate tree into a
// fresh instance of the prototype's type and runs go-playground
// validation over it, so a registry can enforce shape and constraints
// on every read, merge and write:
//
//	type serverConfig struct {
//	    Host string `mapstructure:"host" validate:"required,hostname"`
//	    Port int    `mapstructure:"port" validate:"gte=1,lte=65535"`
//	}
//
//	reg := layers.NewWithOptions(layers.Options{
//	    Validator: layers.StructValidator(serverConfig{}),
//	})
//
// Validation errors are returned as-is (validator.ValidationErrors),
// preserving per-field detail for the caller.
func StructValidator(prototype any) ValidatorFunc {
	typ := reflect.TypeOf(prototype)
	for typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	check := validator.New(validator.WithRequiredStructEnabled())

	return func(tree map[string]any) error {
		if typ == nil || typ.Kind() != reflect.Struct {
			return fmt.Errorf("struct validator prototype must be a struct, got %T", prototype)
		}
		target := reflect.New(typ).Interface()

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           target,
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		})
		if err != nil {
			return fmt.Errorf("failed to create validator decoder: %w", err)
		}
		if err := decoder.Decode(tree); err != nil {
			return fmt.Errorf("config does not match %s: %w", typ.Name(), err)
		}
		return check.Struct(target)
	}
}
