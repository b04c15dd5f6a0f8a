// File: lixenwraith/layers/codec.go
package layers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// supportedExts lists the config formats understood by the codecs, in
// the order discovery tries them when no type is set.
var supportedExts = []string{"json", "toml", "yaml", "yml", "env", "dotenv"}

// decodeConfig parses raw config text into a tree. The root of the
// document must be an object; a top-level array, scalar or null is a
// format error. An empty document decodes to an empty tree.
func decodeConfig(data []byte, format string) (map[string]any, error) {
	switch format {
	case "toml":
		tree := make(map[string]any)
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
		return tree, nil

	case "yaml", "yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		return treeRoot(raw, format)

	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // preserve number precision
		var raw any
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
		return treeRoot(raw, format)

	case "env", "dotenv":
		env, err := godotenv.UnmarshalBytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dotenv config: %w", err)
		}
		tree := make(map[string]any, len(env))
		for key, value := range env {
			tree[key] = value
		}
		return tree, nil

	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedType, format, strings.Join(supportedExts, ", "))
	}
}

// treeRoot checks that a decoded document root is an object.
func treeRoot(raw any, format string) (map[string]any, error) {
	if raw == nil {
		return make(map[string]any), nil
	}
	tree, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid %s config: root must be an object, got %T", format, raw)
	}
	return tree, nil
}

// encodeConfig serializes a tree to config text, deterministically
// enough to round-trip through decodeConfig. The dotenv encoder
// flattens the tree to KEY=value lines with dots replaced by
// underscores, sorted for stable output.
func encodeConfig(tree map[string]any, format, delim string) ([]byte, error) {
	switch format {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(tree); err != nil {
			return nil, fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		return buf.Bytes(), nil

	case "yaml", "yml":
		data, err := yaml.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		return data, nil

	case "json":
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		return append(data, '\n'), nil

	case "env", "dotenv":
		flat := flattenTree(tree, "", delim)
		env := make(map[string]string, len(flat))
		for key, value := range flat {
			name := strings.ToUpper(strings.ReplaceAll(key, delim, "_"))
			env[name] = cast.ToString(value)
		}
		text, err := godotenv.Marshal(env)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to dotenv: %w", err)
		}
		return []byte(text + "\n"), nil

	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedType, format, strings.Join(supportedExts, ", "))
	}
}

// sortedKeys gives debug output stable ordering over a flattened tree.
func sortedKeys(flat map[string]any) []string {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
