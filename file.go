// File: lixenwraith/layers/file.go
package layers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// SetConfigFile sets an explicit config file path, bypassing discovery.
func (r *Registry) SetConfigFile(path string) {
	r.configFile = path
}

// SetConfigName sets the base name (no extension) used by discovery.
func (r *Registry) SetConfigName(name string) {
	r.configName = name
}

// SetConfigType sets the config format. It selects the extension tried
// by discovery and overrides extension-based detection for reads and
// writes.
func (r *Registry) SetConfigType(typ string) {
	r.configType = strings.ToLower(typ)
}

// AddConfigPath appends a directory to the ordered discovery search
// list. Earlier paths win.
func (r *Registry) AddConfigPath(dir string) {
	if dir != "" {
		r.configPaths = append(r.configPaths, dir)
	}
}

// ConfigFileUsed returns the path of the config file last read or set,
// or "" when none has been resolved yet.
func (r *Registry) ConfigFileUsed() string {
	return r.configFile
}

// resolveConfigFile returns the explicit file path if one is set, else
// the first existing {name}.{type} across the search paths in order.
// With no type set, every supported extension is tried per directory.
func (r *Registry) resolveConfigFile() (string, error) {
	if r.configFile != "" {
		return r.configFile, nil
	}
	exts := supportedExts
	if r.configType != "" {
		exts = []string{r.configType}
	}
	for _, dir := range r.configPaths {
		for _, ext := range exts {
			candidate := filepath.Join(dir, r.configName+"."+ext)
			if exists, _ := afero.Exists(r.fs, candidate); exists {
				return candidate, nil
			}
		}
	}
	return "", ConfigFileNotFoundError{
		Name:  r.configName,
		Type:  r.configType,
		Paths: append([]string(nil), r.configPaths...),
	}
}

// formatForPath returns the configured type if set, else the format
// implied by the path's extension.
func (r *Registry) formatForPath(path string) (string, error) {
	if r.configType != "" {
		return r.configType, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: cannot determine format of %q (set a config type)",
			ErrUnsupportedType, path)
	}
	return ext, nil
}

// readConfigFile discovers, reads and decodes the config file, with all
// keys lowercased. The resolved path is returned alongside the tree.
func (r *Registry) readConfigFile() (map[string]any, string, error) {
	path, err := r.resolveConfigFile()
	if err != nil {
		return nil, "", err
	}
	format, err := r.formatForPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	tree, err := decodeConfig(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("config file %q: %w", path, err)
	}
	return lowerTree(tree), path, nil
}

// ReadInConfig locates the config file, parses it, validates the parsed
// tree when a validator is configured, and replaces the config-file
// layer wholesale with the result. The resolved path is remembered for
// later writes. A validation error propagates verbatim and leaves the
// previous layer untouched.
func (r *Registry) ReadInConfig() error {
	tree, path, err := r.readConfigFile()
	if err != nil {
		return err
	}
	if r.validator != nil {
		if err := r.validator(tree); err != nil {
			return err
		}
	}
	r.config = tree
	r.configFile = path
	return nil
}

// MergeInConfig is ReadInConfig with merge semantics: the parsed file is
// deep-merged onto the existing config-file layer and the validator sees
// the post-merge tree, not the file alone.
func (r *Registry) MergeInConfig() error {
	tree, path, err := r.readConfigFile()
	if err != nil {
		return err
	}
	merged := deepMerge(r.config, tree)
	if r.validator != nil {
		if err := r.validator(merged); err != nil {
			return err
		}
	}
	r.config = merged
	r.configFile = path
	return nil
}

// ReadConfig decodes config text from in and replaces the config-file
// layer. The config type must be set beforehand since there is no file
// name to infer a format from.
func (r *Registry) ReadConfig(in io.Reader) error {
	if r.configType == "" {
		return fmt.Errorf("%w: config type must be set before ReadConfig", ErrUnsupportedType)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	tree, err := decodeConfig(data, r.configType)
	if err != nil {
		return err
	}
	tree = lowerTree(tree)
	if r.validator != nil {
		if err := r.validator(tree); err != nil {
			return err
		}
	}
	r.config = tree
	return nil
}

// WriteConfig writes the fully resolved settings to the config file
// last read or set. It fails with ErrNoConfigFile when no path is
// known.
func (r *Registry) WriteConfig() error {
	if r.configFile == "" {
		return ErrNoConfigFile
	}
	return r.writeConfigTo(r.configFile, true)
}

// WriteConfigAs writes the fully resolved settings to path, replacing
// any existing file.
func (r *Registry) WriteConfigAs(path string) error {
	return r.writeConfigTo(path, true)
}

// SafeWriteConfig is WriteConfig but refuses to replace an existing
// file. With no known config file, the path is derived from the first
// search path plus the configured name and type.
func (r *Registry) SafeWriteConfig() error {
	path := r.configFile
	if path == "" {
		if r.configName == "" || r.configType == "" || len(r.configPaths) == 0 {
			return ErrNoConfigFile
		}
		path = filepath.Join(r.configPaths[0], r.configName+"."+r.configType)
	}
	return r.writeConfigTo(path, false)
}

// SafeWriteConfigAs is WriteConfigAs but fails with
// ConfigFileAlreadyExistsError when path already exists. The existence
// check runs immediately before the write; the window between check and
// write is inherent to the single-process design and is not defended
// against other processes.
func (r *Registry) SafeWriteConfigAs(path string) error {
	return r.writeConfigTo(path, false)
}

func (r *Registry) writeConfigTo(path string, force bool) error {
	settings := r.AllSettings()
	if r.validator != nil {
		if err := r.validator(settings); err != nil {
			return err
		}
	}
	format, err := r.formatForPath(path)
	if err != nil {
		return err
	}
	data, err := encodeConfig(settings, format, r.delim)
	if err != nil {
		return err
	}
	// the safe-write existence check runs last, just before the write
	if !force {
		exists, err := afero.Exists(r.fs, path)
		if err != nil {
			return fmt.Errorf("failed to check config file %q: %w", path, err)
		}
		if exists {
			return ConfigFileAlreadyExistsError{Path: path}
		}
	}
	return atomicWriteFile(r.fs, path, data)
}

// atomicWriteFile writes data crash-safely: into a temp file in the
// destination directory first, then an existing destination is backed
// up to path+".bak", then the temp file is renamed over the
// destination. When rename fails (cross-device), it falls back to a
// plain copy while the backup still holds the previous contents. Temp
// cleanup is best-effort and never masks the primary error.
func atomicWriteFile(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %q: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer fs.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file %q: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary file %q: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %q: %w", tmpPath, err)
	}
	if err := fs.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %q: %w", tmpPath, err)
	}

	if exists, _ := afero.Exists(fs, path); exists {
		if err := copyFile(fs, path, path+".bak"); err != nil {
			return fmt.Errorf("failed to back up %q: %w", path, err)
		}
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		if cerr := copyFile(fs, tmpPath, path); cerr != nil {
			return fmt.Errorf("failed to replace %q: %w", path, err)
		}
	}
	return nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, dst, data, 0o644)
}
