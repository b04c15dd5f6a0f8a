// File: lixenwraith/layers/merge.go
package layers

// deepMerge combines two trees into a freshly constructed result,
// RFC 7386 style. Per key in source:
//
//   - a nil source value deletes the key from the result, at every
//     recursion depth independently
//   - two trees merge recursively
//   - anything else replaces wholesale: arrays never concatenate, and a
//     type mismatch on either side means the source value wins
//
// Keys present only in target are preserved. Neither input is mutated
// and the result shares no mutable structure with either, so a later
// Set or pathDelete through the result cannot corrupt a stored layer.
func deepMerge(target, source map[string]any) map[string]any {
	out := make(map[string]any, len(target)+len(source))

	for key, targetVal := range target {
		sourceVal, overridden := source[key]
		if !overridden {
			out[key] = deepCopyValue(targetVal)
			continue
		}
		if sourceVal == nil {
			// delete sentinel
			continue
		}
		if isTree(targetVal) && isTree(sourceVal) {
			out[key] = deepMerge(targetVal.(map[string]any), sourceVal.(map[string]any))
			continue
		}
		out[key] = deepCopyValue(sourceVal)
	}

	for key, sourceVal := range source {
		if _, seen := target[key]; seen {
			continue
		}
		if sourceVal == nil {
			continue
		}
		out[key] = deepCopyValue(sourceVal)
	}

	return out
}

// deepCopyTree returns a structural copy of tree: fresh maps and slices
// at every depth, scalars by value.
func deepCopyTree(tree map[string]any) map[string]any {
	out := make(map[string]any, len(tree))
	for key, value := range tree {
		out[key] = deepCopyValue(value)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyTree(t)
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = deepCopyValue(elem)
		}
		return out
	default:
		return v
	}
}
