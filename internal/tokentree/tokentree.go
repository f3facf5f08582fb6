// internal/tokentree/tokentree.go

// Package tokentree implements generic get/set/clone operations over
// JSON-shaped trees (maps, slices, scalars) addressed by dot-delimited
// paths. It has no knowledge of the design-system shape.
package tokentree

import (
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// ParsePath splits a dot path into segments, discarding empty ones, so
// "colors..primary" and ".colors.primary." both yield ["colors","primary"].
// The empty string yields an empty slice.
func ParsePath(path string) []string {
	parts := strings.Split(path, ".")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Get walks the tree along segments. An empty segment list returns the tree
// itself. The second return is false the moment the walk has to traverse
// through nil or a non-container value, or an array index is invalid.
func Get(tree interface{}, segments []string) (interface{}, bool) {
	current := tree
	for _, seg := range segments {
		switch node := current.(type) {
		case map[string]interface{}:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = v
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set walks tree creating intermediate plain objects for every segment but
// the last, then assigns value at the final segment. It returns false (and
// does not mutate) for an empty segment list. Existing values at the final
// segment are overwritten, and non-object intermediates are replaced with
// objects when a deeper segment demands it.
func Set(tree map[string]interface{}, segments []string, value interface{}) bool {
	if len(segments) == 0 {
		return false
	}

	current := tree
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[seg] = next
		}
		current = next
	}

	current[segments[len(segments)-1]] = value
	return true
}

// Clone deep-copies maps and slices; primitives and nil pass through. The
// result shares no mutable references with the input at any depth.
func Clone(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = Clone(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

// Equal reports structural equality of two trees, independent of map key
// order. It deliberately avoids serialized-string comparison.
func Equal(a, b interface{}) bool {
	return cmp.Equal(a, b)
}
