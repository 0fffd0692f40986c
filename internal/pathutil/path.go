// Package pathutil addresses values inside decoded documents by dotted
// paths such as "spec.containers.0.env".
package pathutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gopatchy/jsv/pkg/errors"
)

// Split turns a dotted path into its parts. The empty path has none and
// addresses the whole document.
func Split(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}

// Get walks parts through maps by key and lists by index.
func Get(data any, parts []string) (any, error) {
	current := data

	for i, part := range parts {
		switch obj := current.(type) {
		case map[string]any:
			val, found := obj[part]
			if !found {
				return nil, fmt.Errorf("%s: %w", strings.Join(parts[:i+1], "."), errors.ErrPathNotFound)
			}

			current = val

		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(obj) {
				return nil, fmt.Errorf("%s: %w", strings.Join(parts[:i+1], "."), errors.ErrPathNotFound)
			}

			current = obj[idx]

		default:
			return nil, fmt.Errorf("%s: cannot index %T (%w)", strings.Join(parts[:i+1], "."), current, errors.ErrPathNotFound)
		}
	}

	return current, nil
}

// GetMap is Get for paths that must lead to a map.
func GetMap(data any, parts []string) (map[string]any, error) {
	v, err := Get(data, parts)
	if err != nil {
		return nil, err
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s is %T, not a map (%w)", strings.Join(parts, "."), v, errors.ErrInvalidType)
	}

	return m, nil
}

// Set stores value at parts, creating intermediate maps. It reports false,
// leaving data unchanged, when a prefix already holds something other than
// a map.
func Set(data map[string]any, parts []string, value any) bool {
	if len(parts) == 0 {
		return false
	}

	current := data

	for _, part := range parts[:len(parts)-1] {
		next, found := current[part]
		if !found {
			next = map[string]any{}
			current[part] = next
		}

		m, ok := next.(map[string]any)
		if !ok {
			return false
		}

		current = m
	}

	current[parts[len(parts)-1]] = value

	return true
}
