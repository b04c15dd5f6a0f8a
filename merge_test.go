// File: lixenwraith/layers/merge_test.go
package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepMergeIdentity(t *testing.T) {
	tree := map[string]any{
		"a": 1,
		"b": map[string]any{"c": "x", "d": []any{1, 2}},
	}

	t.Run("EmptySource", func(t *testing.T) {
		assert.Equal(t, tree, deepMerge(tree, map[string]any{}))
	})

	t.Run("EmptyTarget", func(t *testing.T) {
		assert.Equal(t, tree, deepMerge(map[string]any{}, tree))
	})

	t.Run("InputsNotMutated", func(t *testing.T) {
		target := map[string]any{"a": map[string]any{"b": 1}}
		source := map[string]any{"a": map[string]any{"c": 2}}
		out := deepMerge(target, source)

		out["a"].(map[string]any)["b"] = 99
		out["a"].(map[string]any)["c"] = 99
		assert.Equal(t, 1, target["a"].(map[string]any)["b"])
		assert.Equal(t, 2, source["a"].(map[string]any)["c"])
	})

	t.Run("PreservedBranchIsCopied", func(t *testing.T) {
		target := map[string]any{"keep": map[string]any{"x": 1}}
		out := deepMerge(target, map[string]any{})
		out["keep"].(map[string]any)["x"] = 99
		assert.Equal(t, 1, target["keep"].(map[string]any)["x"])
	})
}

func TestDeepMergeNullDelete(t *testing.T) {
	t.Run("TopLevel", func(t *testing.T) {
		out := deepMerge(
			map[string]any{"a": 1, "b": 2},
			map[string]any{"a": nil},
		)
		assert.Equal(t, map[string]any{"b": 2}, out)
	})

	t.Run("Nested", func(t *testing.T) {
		out := deepMerge(
			map[string]any{"outer": map[string]any{"only": 1}},
			map[string]any{"outer": map[string]any{"only": nil}},
		)
		// deleting the only nested key leaves an empty object, not a
		// removed parent
		assert.Equal(t, map[string]any{"outer": map[string]any{}}, out)
	})

	t.Run("NilForMissingKeyIsNoOp", func(t *testing.T) {
		out := deepMerge(
			map[string]any{"a": 1},
			map[string]any{"ghost": nil},
		)
		assert.Equal(t, map[string]any{"a": 1}, out)
	})
}

func TestDeepMergeReplacement(t *testing.T) {
	tests := []struct {
		name   string
		target any
		source any
	}{
		{"ArrayOverArray", []any{1, 2}, []any{3}},
		{"ArrayOverObject", map[string]any{"x": 1}, []any{3}},
		{"ObjectOverArray", []any{1}, map[string]any{"y": 2}},
		{"PrimitiveOverObject", map[string]any{"x": 1}, "scalar"},
		{"ObjectOverPrimitive", "scalar", map[string]any{"y": 2}},
		{"PrimitiveOverPrimitive", 1, "two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := deepMerge(
				map[string]any{"k": tt.target},
				map[string]any{"k": tt.source},
			)
			assert.Equal(t, tt.source, out["k"])
		})
	}

	t.Run("RecursiveObjectMerge", func(t *testing.T) {
		out := deepMerge(
			map[string]any{"k": map[string]any{"a": 1, "b": 2}},
			map[string]any{"k": map[string]any{"b": 3, "c": 4}},
		)
		assert.Equal(t, map[string]any{"a": 1, "b": 3, "c": 4}, out["k"])
	})
}

func TestDeepMergeDisjointAssociative(t *testing.T) {
	a := map[string]any{"a": 1}
	b := map[string]any{"b": map[string]any{"x": 1}}
	c := map[string]any{"c": []any{1}}

	left := deepMerge(deepMerge(a, b), c)
	right := deepMerge(a, deepMerge(b, c))
	require.Equal(t, left, right)
	assert.Equal(t, map[string]any{
		"a": 1,
		"b": map[string]any{"x": 1},
		"c": []any{1},
	}, left)
}
