// File: lixenwraith/layers/errors.go
package layers

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoConfigFile is returned by write operations when no config file
	// path has been set or discovered.
	ErrNoConfigFile = errors.New("config file path not set")

	// ErrSelfAlias is returned by RegisterAlias when the alias and target
	// normalize to the same key.
	ErrSelfAlias = errors.New("alias cannot point to itself")

	// ErrCircularAlias is returned at lookup time when following the alias
	// chain revisits a key.
	ErrCircularAlias = errors.New("circular alias reference")

	// ErrUnsupportedType is returned when a config format is not one of
	// the supported types.
	ErrUnsupportedType = errors.New("unsupported config type")
)

// ConfigFileNotFoundError is returned by ReadInConfig and MergeInConfig
// when no config file was found across the configured search paths.
type ConfigFileNotFoundError struct {
	Name  string
	Type  string
	Paths []string
}

func (e ConfigFileNotFoundError) Error() string {
	typ := e.Type
	if typ == "" {
		typ = "any supported type"
	}
	return fmt.Sprintf("config file %q (type %s) not found in [%s]",
		e.Name, typ, strings.Join(e.Paths, ", "))
}

// ConfigFileAlreadyExistsError is returned by the safe-write operations
// when the target file already exists.
type ConfigFileAlreadyExistsError struct {
	Path string
}

func (e ConfigFileAlreadyExistsError) Error() string {
	return fmt.Sprintf("config file %q already exists", e.Path)
}
