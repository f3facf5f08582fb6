// internal/tokentree/tokentree_test.go
package tokentree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{name: "simple", path: "colors.primary", expected: []string{"colors", "primary"}},
		{name: "single segment", path: "colors", expected: []string{"colors"}},
		{name: "double dots collapsed", path: "colors..primary", expected: []string{"colors", "primary"}},
		{name: "leading and trailing dots", path: ".colors.primary.", expected: []string{"colors", "primary"}},
		{name: "empty string", path: "", expected: []string{}},
		{name: "only dots", path: "...", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePath(tt.path))
		})
	}
}

func TestGet(t *testing.T) {
	tree := map[string]interface{}{
		"colors": map[string]interface{}{
			"primary": []interface{}{"#ff0000", "#00ff00"},
			"depth":   nil,
		},
		"baseUnit": 8.0,
	}

	tests := []struct {
		name     string
		segments []string
		expected interface{}
		found    bool
	}{
		{name: "nested map", segments: []string{"colors", "primary"}, expected: []interface{}{"#ff0000", "#00ff00"}, found: true},
		{name: "array index", segments: []string{"colors", "primary", "1"}, expected: "#00ff00", found: true},
		{name: "scalar", segments: []string{"baseUnit"}, expected: 8.0, found: true},
		{name: "missing key", segments: []string{"colors", "tertiary"}, found: false},
		{name: "through nil", segments: []string{"colors", "depth", "deeper"}, found: false},
		{name: "through scalar", segments: []string{"baseUnit", "deeper"}, found: false},
		{name: "index out of range", segments: []string{"colors", "primary", "7"}, found: false},
		{name: "non-numeric index", segments: []string{"colors", "primary", "first"}, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Get(tree, tt.segments)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, got)
			}
		})
	}

	t.Run("empty segments return the tree itself", func(t *testing.T) {
		got, ok := Get(tree, nil)
		require.True(t, ok)
		assert.Equal(t, tree, got)
	})
}

func TestSet(t *testing.T) {
	t.Run("empty segments do not mutate", func(t *testing.T) {
		tree := map[string]interface{}{"a": 1}
		ok := Set(tree, nil, "x")
		assert.False(t, ok)
		assert.Equal(t, map[string]interface{}{"a": 1}, tree)
	})

	t.Run("sets nested value creating intermediates", func(t *testing.T) {
		tree := map[string]interface{}{}
		ok := Set(tree, []string{"colors", "semantic", "error"}, "#ef4444")
		require.True(t, ok)
		got, found := Get(tree, []string{"colors", "semantic", "error"})
		require.True(t, found)
		assert.Equal(t, "#ef4444", got)
	})

	t.Run("overwrites existing value", func(t *testing.T) {
		tree := map[string]interface{}{"colors": map[string]interface{}{"primary": "#000"}}
		ok := Set(tree, []string{"colors", "primary"}, "#fff")
		require.True(t, ok)
		got, _ := Get(tree, []string{"colors", "primary"})
		assert.Equal(t, "#fff", got)
	})

	t.Run("replaces scalar with object when path goes deeper", func(t *testing.T) {
		tree := map[string]interface{}{"spacing": 8.0}
		ok := Set(tree, []string{"spacing", "baseUnit"}, 4.0)
		require.True(t, ok)
		got, found := Get(tree, []string{"spacing", "baseUnit"})
		require.True(t, found)
		assert.Equal(t, 4.0, got)
	})
}

func TestClone(t *testing.T) {
	original := map[string]interface{}{
		"a": map[string]interface{}{
			"b": []interface{}{1, 2},
		},
	}

	cloned, ok := Clone(original).(map[string]interface{})
	require.True(t, ok)
	assert.True(t, Equal(original, cloned))

	// Mutating the clone's nested array must not reach the original.
	inner := cloned["a"].(map[string]interface{})
	inner["b"] = append(inner["b"].([]interface{}), 3)
	assert.Len(t, original["a"].(map[string]interface{})["b"], 2)

	t.Run("primitives pass through", func(t *testing.T) {
		assert.Equal(t, 42, Clone(42))
		assert.Equal(t, "x", Clone("x"))
		assert.Nil(t, Clone(nil))
	})
}

func TestEqual(t *testing.T) {
	a := map[string]interface{}{"x": 1.0, "y": map[string]interface{}{"z": "v"}}
	b := map[string]interface{}{"y": map[string]interface{}{"z": "v"}, "x": 1.0}
	assert.True(t, Equal(a, b))

	c := map[string]interface{}{"x": 1.0, "y": map[string]interface{}{"z": "w"}}
	assert.False(t, Equal(a, c))
}
