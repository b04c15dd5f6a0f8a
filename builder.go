// File: lixenwraith/layers/builder.go
package layers

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// Builder provides a fluent interface for assembling a Registry in one
// call: defaults, file location, environment wiring, and validation.
type Builder struct {
	opts       Options
	defaults   map[string]any
	file       string
	name       string
	configType string
	paths      []string
	bindings   map[string][]string
	aliases    map[string]string
	validators []ValidatorFunc
}

// NewBuilder creates a new registry builder.
func NewBuilder() *Builder {
	return &Builder{
		bindings: make(map[string][]string),
		aliases:  make(map[string]string),
	}
}

// WithDefaults sets the tree of default values.
func (b *Builder) WithDefaults(defaults map[string]any) *Builder {
	b.defaults = defaults
	return b
}

// WithFile sets an explicit configuration file path.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithName sets the base name used for config file discovery.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithType sets the config format.
func (b *Builder) WithType(typ string) *Builder {
	b.configType = typ
	return b
}

// WithSearchPaths appends directories to the discovery search list.
func (b *Builder) WithSearchPaths(dirs ...string) *Builder {
	b.paths = append(b.paths, dirs...)
	return b
}

// WithEnvPrefix sets the automatic environment variable prefix and
// enables automatic env lookups.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	b.opts.AutomaticEnv = true
	return b
}

// WithEnvBinding binds a key to explicit environment variable names.
func (b *Builder) WithEnvBinding(key string, names ...string) *Builder {
	b.bindings[key] = append(b.bindings[key], names...)
	return b
}

// WithAlias registers an alias for a canonical key.
func (b *Builder) WithAlias(alias, target string) *Builder {
	b.aliases[alias] = target
	return b
}

// WithDelimiter sets the key delimiter. Default ".".
func (b *Builder) WithDelimiter(delim string) *Builder {
	b.opts.Delimiter = delim
	return b
}

// WithFs sets the filesystem used for discovery, reads and writes.
func (b *Builder) WithFs(fs afero.Fs) *Builder {
	b.opts.Fs = fs
	return b
}

// WithEnvProvider sets the environment lookup provider.
func (b *Builder) WithEnvProvider(env EnvProvider) *Builder {
	b.opts.Env = env
	return b
}

// WithValidator adds a validation function. Multiple validators run in
// the order added, composed into the registry's single validator slot.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build assembles the Registry, reads the config file when one is
// configured, and validates the resolved settings. A missing config
// file is not fatal: the registry is returned alongside the
// ConfigFileNotFoundError so callers can fall back to defaults and
// environment values.
func (b *Builder) Build() (*Registry, error) {
	if len(b.validators) > 0 {
		validators := b.validators
		b.opts.Validator = func(tree map[string]any) error {
			for _, validate := range validators {
				if err := validate(tree); err != nil {
					return err
				}
			}
			return nil
		}
	}

	reg := NewWithOptions(b.opts)
	if b.defaults != nil {
		reg.SetDefaults(b.defaults)
	}
	if b.file != "" {
		reg.SetConfigFile(b.file)
	}
	if b.name != "" {
		reg.SetConfigName(b.name)
	}
	if b.configType != "" {
		reg.SetConfigType(b.configType)
	}
	for _, dir := range b.paths {
		reg.AddConfigPath(dir)
	}
	for key, names := range b.bindings {
		if err := reg.BindEnv(key, names...); err != nil {
			return nil, err
		}
	}
	for alias, target := range b.aliases {
		if err := reg.RegisterAlias(alias, target); err != nil {
			return nil, err
		}
	}

	readable := b.file != "" || (b.name != "" && len(b.paths) > 0)
	var notFound error
	if readable {
		if err := reg.ReadInConfig(); err != nil {
			var nf ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, err
			}
			notFound = err
		}
	}

	if reg.validator != nil {
		if err := reg.validator(reg.AllSettings()); err != nil {
			return nil, err
		}
	}

	// ConfigFileNotFoundError or nil
	return reg, notFound
}

// MustBuild is like Build but panics on error. A missing config file is
// not fatal; the registry proceeds on defaults and environment values.
func (b *Builder) MustBuild() *Registry {
	reg, err := b.Build()
	if err != nil {
		var nf ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			panic(fmt.Sprintf("registry build failed: %v", err))
		}
	}
	return reg
}

// BuildAndUnmarshal builds the registry and decodes the resolved
// settings into target.
func (b *Builder) BuildAndUnmarshal(target any) (*Registry, error) {
	reg, err := b.Build()
	if err != nil {
		var nf ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}
	if uerr := reg.Unmarshal(target); uerr != nil {
		return nil, uerr
	}
	// ConfigFileNotFoundError or nil
	return reg, err
}
