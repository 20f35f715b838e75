// Package translation manipulates nested i18n documents: flattening to
// dot-path keys and back, diffing against a reference language and merging.
package translation

import (
	"fmt"
	"sort"
	"strings"
)

// Separator joins nested keys in flattened form
const Separator = "."

// ConflictError reports a path that is used both as a value and as a parent
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("translation key %q conflicts with an existing key", e.Path)
}

// Flatten turns a nested document into a map of dot paths to leaf values.
// Arrays and scalars are leaves. Empty objects are kept as leaves so that
// Unflatten can restore them.
func Flatten(doc map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", doc)
	return out
}

func flattenInto(out map[string]any, prefix string, doc map[string]any) {
	for key, value := range doc {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		if nested, ok := value.(map[string]any); ok && len(nested) > 0 {
			flattenInto(out, path, nested)
			continue
		}
		out[path] = value
	}
}

// Unflatten rebuilds the nested document. Keys are applied in sorted order so
// that conflicts are reported deterministically.
func Unflatten(flat map[string]any) (map[string]any, error) {
	out := make(map[string]any)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		parts := strings.Split(key, Separator)
		current := out
		for idx, part := range parts[:len(parts)-1] {
			next, exists := current[part]
			if !exists {
				child := make(map[string]any)
				current[part] = child
				current = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				return nil, &ConflictError{Path: strings.Join(parts[:idx+1], Separator)}
			}
			current = child
		}

		last := parts[len(parts)-1]
		if existing, exists := current[last]; exists {
			if _, isMap := existing.(map[string]any); isMap {
				return nil, &ConflictError{Path: key}
			}
		}
		current[last] = flat[key]
	}

	return out, nil
}

// CountKeys returns the number of leaf keys in doc
func CountKeys(doc map[string]any) int {
	return len(Flatten(doc))
}
