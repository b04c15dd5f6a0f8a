// File: lixenwraith/layers/path.go
package layers

import "strings"

// splitKey normalizes a raw key into its lowercase path segments.
// Empty segments produced by leading, trailing, or doubled delimiters
// are dropped, so "server..port" and ".server.port." both address
// ["server", "port"]. A key consisting only of delimiters yields an
// empty path.
func splitKey(raw, delim string) []string {
	parts := strings.Split(strings.ToLower(raw), delim)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// isTree reports whether v is a live nested tree: a non-nil
// map[string]any. This is the single mergeability predicate shared by
// merge, path navigation, and Sub, so arrays, nil, and scalars are
// treated uniformly everywhere.
func isTree(v any) bool {
	m, ok := v.(map[string]any)
	return ok && m != nil
}

// pathGet walks tree by successive segment lookup. The boolean result
// distinguishes absent keys from present falsy values: a stored false,
// 0, "" or nil returns (value, true). An empty path returns the tree
// itself. Any non-tree intermediate makes the whole path absent.
func pathGet(tree map[string]any, path []string) (any, bool) {
	var current any = tree
	for _, segment := range path {
		if !isTree(current) {
			return nil, false
		}
		value, exists := current.(map[string]any)[segment]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}

// pathSet assigns value at path, creating intermediate maps as needed.
// An existing intermediate that is not a live tree (scalar, nil, or
// array) is replaced with a fresh map, destroying the old branch. The
// final segment is assigned verbatim, nil and slices included. An empty
// path is a no-op.
func pathSet(tree map[string]any, path []string, value any) {
	if len(path) == 0 {
		return
	}
	current := tree
	for _, segment := range path[:len(path)-1] {
		if next, exists := current[segment]; exists && isTree(next) {
			current = next.(map[string]any)
			continue
		}
		replacement := make(map[string]any)
		current[segment] = replacement
		current = replacement
	}
	current[path[len(path)-1]] = value
}

// pathDelete removes the key at path. If any intermediate is missing or
// not a live tree the operation is a no-op, as is an empty path.
func pathDelete(tree map[string]any, path []string) {
	if len(path) == 0 {
		return
	}
	current := tree
	for _, segment := range path[:len(path)-1] {
		next, exists := current[segment]
		if !exists || !isTree(next) {
			return
		}
		current = next.(map[string]any)
	}
	delete(current, path[len(path)-1])
}

// flattenTree enumerates every leaf of tree as a delimiter-joined path.
// Leaves are all non-tree values, nil and slices included. Iteration
// order is map order; callers needing determinism must sort.
func flattenTree(tree map[string]any, prefix, delim string) map[string]any {
	flat := make(map[string]any)
	for key, value := range tree {
		fullPath := key
		if prefix != "" {
			fullPath = prefix + delim + key
		}
		if isTree(value) {
			for subPath, subValue := range flattenTree(value.(map[string]any), fullPath, delim) {
				flat[subPath] = subValue
			}
		} else {
			flat[fullPath] = value
		}
	}
	return flat
}

// lowerTree returns a deep copy of src with every map key lowercased at
// every depth, including maps nested inside slices. Incoming trees pass
// through here exactly once, at the point of first use, which is what
// makes the whole key space case-insensitive.
func lowerTree(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[strings.ToLower(key)] = lowerValue(value)
	}
	return out
}

// lowerValue is the value-level companion of lowerTree. Scalars pass
// through unchanged; maps and slices are freshly allocated so the result
// shares no mutable structure with the input.
func lowerValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return lowerTree(t)
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = lowerValue(elem)
		}
		return out
	default:
		return v
	}
}
