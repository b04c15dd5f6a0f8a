// File: lixenwraith/layers/registry.go
package layers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ValidatorFunc checks a fully resolved configuration tree. A non-nil
// error from the validator propagates to the caller verbatim, never
// wrapped, so structured validation detail survives intact.
type ValidatorFunc func(tree map[string]any) error

// Options configures a Registry at construction time. The zero value is
// usable: dot delimiter, the real process environment, the OS
// filesystem, no prefix, no validator.
type Options struct {
	// Delimiter separates key segments. Default ".".
	Delimiter string

	// EnvPrefix is prepended to automatically derived variable names.
	EnvPrefix string

	// AutomaticEnv enables prefix-derived environment lookups.
	AutomaticEnv bool

	// Fs is the filesystem used for config discovery, reads and writes.
	// Default: the OS filesystem.
	Fs afero.Fs

	// Env supplies environment variable lookups. Default: the process
	// environment.
	Env EnvProvider

	// Validator, when set, checks trees on ReadInConfig, MergeInConfig
	// and the write operations.
	Validator ValidatorFunc

	// TagName is the struct tag consulted by Unmarshal. Default
	// "mapstructure".
	TagName string
}

// Registry owns the four configuration layers and resolves keys across
// them: overrides, then environment, then the config file, then
// defaults. It is not safe for unsynchronized concurrent mutation; see
// the package documentation.
type Registry struct {
	delim   string
	fs      afero.Fs
	env     EnvProvider
	tagName string

	configFile  string
	configName  string
	configType  string
	configPaths []string

	defaults map[string]any
	config   map[string]any
	override map[string]any

	aliases     map[string]string
	envBindings map[string][]string
	envPrefix   string
	autoEnv     bool

	validator ValidatorFunc
}

// New creates a Registry with default options.
func New() *Registry {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Registry with the given options, filling in
// defaults for zero fields.
func NewWithOptions(opts Options) *Registry {
	if opts.Delimiter == "" {
		opts.Delimiter = "."
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Env == nil {
		opts.Env = OSEnv{}
	}
	if opts.TagName == "" {
		opts.TagName = "mapstructure"
	}
	return &Registry{
		delim:       opts.Delimiter,
		fs:          opts.Fs,
		env:         opts.Env,
		tagName:     opts.TagName,
		envPrefix:   strings.ToUpper(opts.EnvPrefix),
		autoEnv:     opts.AutomaticEnv,
		validator:   opts.Validator,
		defaults:    make(map[string]any),
		config:      make(map[string]any),
		override:    make(map[string]any),
		aliases:     make(map[string]string),
		envBindings: make(map[string][]string),
	}
}

// SetValidator installs the tree validator used by the read, merge and
// write operations. A nil validator disables validation.
func (r *Registry) SetValidator(fn ValidatorFunc) {
	r.validator = fn
}

// normalizeKey lowercases a raw key and collapses empty segments so two
// spellings of the same logical key compare equal.
func (r *Registry) normalizeKey(key string) string {
	return strings.Join(splitKey(key, r.delim), r.delim)
}

// find resolves a key through the alias chain and the layer precedence
// order. The boolean reports presence: a stored nil, false, 0 or ""
// short-circuits the chain just like any other value. The only error is
// a circular alias.
func (r *Registry) find(key string) (any, bool, error) {
	canonical, err := r.resolveAlias(r.normalizeKey(key))
	if err != nil {
		return nil, false, err
	}
	path := splitKey(canonical, r.delim)

	if v, ok := pathGet(r.override, path); ok {
		return v, true, nil
	}
	if v, ok := r.resolveEnv(canonical); ok {
		return v, true, nil
	}
	if v, ok := pathGet(r.config, path); ok {
		return v, true, nil
	}
	if v, ok := pathGet(r.defaults, path); ok {
		return v, true, nil
	}
	return nil, false, nil
}

// Get returns the value for key, or nil when the key is absent from
// every layer. A circular alias also yields nil; use Find to observe
// the error.
func (r *Registry) Get(key string) any {
	v, _, err := r.find(key)
	if err != nil {
		return nil
	}
	return v
}

// Find is Get with the alias-cycle error surfaced. An absent key
// returns (nil, nil).
func (r *Registry) Find(key string) (any, error) {
	v, _, err := r.find(key)
	return v, err
}

// IsSet reports whether key resolves to a present value in any layer.
// Present falsy values (false, 0, "", nil) count as set.
func (r *Registry) IsSet(key string) bool {
	_, found, err := r.find(key)
	return err == nil && found
}

// Set writes value into the overrides layer, the highest-precedence
// layer. Map and slice values are deep-copied with their keys
// lowercased, so the stored layer never aliases caller-owned structure.
func (r *Registry) Set(key string, value any) {
	pathSet(r.override, splitKey(key, r.delim), lowerValue(value))
}

// SetDefault writes value into the defaults layer, the lowest-precedence
// layer.
func (r *Registry) SetDefault(key string, value any) {
	pathSet(r.defaults, splitKey(key, r.delim), lowerValue(value))
}

// SetDefaults deep-merges a tree of defaults into the defaults layer,
// lowercasing all incoming keys first. A nil value in the incoming tree
// deletes the corresponding default.
func (r *Registry) SetDefaults(defaults map[string]any) {
	r.defaults = deepMerge(r.defaults, lowerTree(defaults))
}

// MergeConfigMap deep-merges a tree into the config-file layer,
// lowercasing all incoming keys first. No validation is performed.
func (r *Registry) MergeConfigMap(cfg map[string]any) {
	r.config = deepMerge(r.config, lowerTree(cfg))
}

// AllKeys returns the sorted union of every leaf key stored in the
// defaults, config-file and overrides layers. Keys that exist only as
// environment bindings are not discoverable here: the environment layer
// overlays stored keys, it does not introduce new ones.
func (r *Registry) AllKeys() []string {
	seen := make(map[string]struct{})
	for _, layer := range []map[string]any{r.defaults, r.config, r.override} {
		for key := range flattenTree(layer, "", r.delim) {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// AllSettings returns a fully resolved snapshot: defaults, config file
// and overrides deep-merged in precedence order, then every leaf key
// overlaid with its live environment value where one resolves. The
// result is freshly constructed and safe for the caller to mutate.
func (r *Registry) AllSettings() map[string]any {
	merged := deepMerge(deepMerge(r.defaults, r.config), r.override)
	for key := range flattenTree(merged, "", r.delim) {
		if value, ok := r.resolveEnv(key); ok {
			pathSet(merged, splitKey(key, r.delim), value)
		}
	}
	return merged
}

// Sub returns a new Registry whose config-file layer is a deep copy of
// the nested tree at key, resolved with Get's precedence. The child
// shares the parent's delimiter, filesystem and environment provider
// but has no defaults, overrides, aliases or bindings of its own, and
// is fully independent of the parent after creation. A key resolving to
// anything but a tree (nil, array, scalar, or absent) returns nil.
func (r *Registry) Sub(key string) *Registry {
	value, found, err := r.find(key)
	if err != nil || !found || !isTree(value) {
		return nil
	}
	sub := NewWithOptions(Options{
		Delimiter: r.delim,
		Fs:        r.fs,
		Env:       r.env,
		TagName:   r.tagName,
	})
	sub.config = lowerTree(value.(map[string]any))
	return sub
}

// Debug returns a formatted dump of each stored layer's flattened keys,
// sorted, for troubleshooting precedence questions.
func (r *Registry) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration layers (highest precedence first):\n")
	stored := []struct {
		name string
		tree map[string]any
	}{
		{"override", r.override},
		{"config", r.config},
		{"defaults", r.defaults},
	}
	for _, layer := range stored {
		b.WriteString(layer.name + ":\n")
		flat := flattenTree(layer.tree, "", r.delim)
		for _, key := range sortedKeys(flat) {
			fmt.Fprintf(&b, "  %s = %v\n", key, flat[key])
		}
	}
	return b.String()
}
