// File: lixenwraith/layers/env.go
package layers

import (
	"fmt"
	"os"
	"strings"
)

// EnvProvider supplies environment variable lookups. The default
// implementation reads the live process environment; tests substitute a
// map-backed provider. Lookups go through the provider on every call so
// external mutation is observed on the next read.
type EnvProvider interface {
	LookupEnv(name string) (string, bool)
}

// OSEnv is the EnvProvider backed by the process environment.
type OSEnv struct{}

func (OSEnv) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnv is a fixed, in-memory EnvProvider, useful for deterministic
// tests and for composing synthetic environments.
type MapEnv map[string]string

func (m MapEnv) LookupEnv(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// SetEnvPrefix sets the prefix prepended to variable names derived by
// AutomaticEnv. "app" and "APP" are equivalent; the derived name is
// always uppercase.
func (r *Registry) SetEnvPrefix(prefix string) {
	r.envPrefix = strings.ToUpper(prefix)
}

// AutomaticEnv enables automatic environment lookups: any key without an
// explicit binding is checked against the variable derived from the env
// prefix and the key, dots replaced by underscores, uppercased.
func (r *Registry) AutomaticEnv() {
	r.autoEnv = true
}

// BindEnv binds a key to one or more environment variable names, checked
// in registration order with the first defined variable winning. With no
// names, the key is bound to its prefix-derived variable. Repeated calls
// for the same key append candidates rather than replacing them. Bound
// variables are consulted whether or not AutomaticEnv is enabled.
func (r *Registry) BindEnv(key string, names ...string) error {
	canonical := r.normalizeKey(key)
	if canonical == "" {
		return fmt.Errorf("bind env: missing key")
	}
	if len(names) == 0 {
		names = []string{r.envName(canonical)}
	}
	r.envBindings[canonical] = append(r.envBindings[canonical], names...)
	return nil
}

// resolveEnv produces the environment-derived value for a canonical key.
// Explicit bindings win and are checked regardless of the automatic-env
// flag; a defined-but-empty variable counts as present. When a binding
// entry exists, automatic derivation is not consulted even if none of
// the bound variables are defined.
func (r *Registry) resolveEnv(canonical string) (string, bool) {
	if names, bound := r.envBindings[canonical]; bound {
		for _, name := range names {
			if value, defined := r.env.LookupEnv(name); defined {
				return value, true
			}
		}
		return "", false
	}
	if r.autoEnv {
		if value, defined := r.env.LookupEnv(r.envName(canonical)); defined {
			return value, true
		}
	}
	return "", false
}

// envName derives the variable name for a key: prefix and path segments
// joined with underscores, uppercased.
func (r *Registry) envName(canonical string) string {
	name := strings.ToUpper(strings.Join(splitKey(canonical, r.delim), "_"))
	if r.envPrefix != "" {
		name = r.envPrefix + "_" + name
	}
	return name
}
