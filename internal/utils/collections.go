package utils

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/gopatchy/jsv/pkg/errors"
)

func SortedMap[Map ~map[K]V, K cmp.Ordered, V any](m Map) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[Map ~map[K]V, K cmp.Ordered, V any](m Map) []K {
	return slices.Sorted(maps.Keys(m))
}

// Mixin shallow-merges each source into dst, later sources overwriting
// earlier keys, and returns dst. Nil sources are skipped.
func Mixin(dst map[string]any, srcs ...map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}

	for _, src := range srcs {
		for k, v := range src {
			dst[k] = v
		}
	}

	return dst
}

// MixinAny is Mixin for sources of unknown type, as decoded from a document;
// a non-map source is an error.
func MixinAny(dst map[string]any, srcs ...any) (map[string]any, error) {
	for i, src := range srcs {
		if src == nil {
			continue
		}

		m, ok := src.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("mixin source %d is %T (%w)", i, src, errors.ErrInvalidType)
		}

		dst = Mixin(dst, m)
	}

	return Mixin(dst), nil
}

func GetMapStringValue(m map[string]any, k string) string {
	v, found := m[k]
	if !found {
		return ""
	}

	return ToString(v)
}
