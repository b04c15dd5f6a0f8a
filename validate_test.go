// File: lixenwraith/layers/validate_test.go
package layers_test

import (
	"io"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/layers"
)

func jsonReader(s string) io.Reader {
	return strings.NewReader(s)
}

type validatedConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"gte=1,lte=65535"`
}

func TestStructValidator(t *testing.T) {
	validate := layers.StructValidator(validatedConfig{})

	t.Run("AcceptsValidTree", func(t *testing.T) {
		err := validate(map[string]any{"host": "h", "port": 8080})
		assert.NoError(t, err)
	})

	t.Run("RejectsMissingRequired", func(t *testing.T) {
		err := validate(map[string]any{"port": 8080})
		require.Error(t, err)
		// the validator's own structured detail survives
		var fields validator.ValidationErrors
		require.ErrorAs(t, err, &fields)
		assert.Equal(t, "Host", fields[0].StructField())
	})

	t.Run("RejectsOutOfRange", func(t *testing.T) {
		err := validate(map[string]any{"host": "h", "port": 99999})
		assert.Error(t, err)
	})

	t.Run("WeakTypingBeforeValidation", func(t *testing.T) {
		// env-style string values convert before constraints run
		err := validate(map[string]any{"host": "h", "port": "8080"})
		assert.NoError(t, err)
	})

	t.Run("PointerPrototype", func(t *testing.T) {
		validate := layers.StructValidator(&validatedConfig{})
		assert.NoError(t, validate(map[string]any{"host": "h", "port": 1}))
	})

	t.Run("OnRegistryRead", func(t *testing.T) {
		reg := layers.NewWithOptions(layers.Options{
			Validator: layers.StructValidator(validatedConfig{}),
		})
		reg.SetConfigType("json")
		err := reg.ReadConfig(jsonReader(`{"host":"h","port":0}`))
		assert.Error(t, err, "port 0 violates gte=1")

		err = reg.ReadConfig(jsonReader(`{"host":"h","port":80}`))
		assert.NoError(t, err)
		assert.Equal(t, 80, reg.GetInt("port"))
	})
}
