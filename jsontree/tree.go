// Package jsontree holds small helpers for JSON-like configuration trees
// decoded into map[string]any / []any values.
package jsontree

import (
	"fmt"
	"sort"

	"github.com/mitchellh/copystructure"
)

// Clone returns an independent deep copy of tree. A nil tree clones to an
// empty object so callers can always write into the result.
func Clone(tree map[string]any) (map[string]any, error) {
	if tree == nil {
		return map[string]any{}, nil
	}
	copied, err := copystructure.Copy(tree)
	if err != nil {
		return nil, fmt.Errorf("jsontree: clone object: %w", err)
	}
	out, ok := copied.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("jsontree: clone object: unexpected type %T", copied)
	}
	return out, nil
}

// CloneValue deep copies any JSON value (object, array or scalar).
func CloneValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	copied, err := copystructure.Copy(value)
	if err != nil {
		return nil, fmt.Errorf("jsontree: clone value: %w", err)
	}
	return copied, nil
}

// Set writes value at the top-level key of tree. Keys are written verbatim,
// blank ones included, and never interpreted as paths.
func Set(tree map[string]any, key string, value any) error {
	if tree == nil {
		return fmt.Errorf("jsontree: cannot set %q on nil object", key)
	}
	tree[key] = value
	return nil
}

// Keys returns the top-level keys of tree in sorted order.
func Keys(tree map[string]any) []string {
	if len(tree) == 0 {
		return []string{}
	}
	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Overlay returns a copy of base with every field of top written over it.
// Values from top replace the base value wholesale; nested objects are not
// merged.
func Overlay(base, top map[string]any) (map[string]any, error) {
	out, err := Clone(base)
	if err != nil {
		return nil, err
	}
	for key, value := range top {
		copied, err := CloneValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = copied
	}
	return out, nil
}
