package utils

import (
	"encoding/json"
	"sync"
)

// mapPool reuses maps to reduce allocations
var mapPool = sync.Pool{
	New: func() any {
		return make(map[string]any, 16)
	},
}

// DeepClone copies maps and slices of a decoded document so the copy can be
// mutated by cast or defaults without touching the source.
func DeepClone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCloneMap(val)

	case []any:
		return deepCloneSlice(val)

	case []map[string]any:
		ret := make([]any, len(val))
		for i, m := range val {
			ret[i] = deepCloneMap(m)
		}
		return ret

	case json.Number:
		return val

	default:
		// Scalars and unknown types are copied by value
		return val
	}
}

func deepCloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	scratch := mapPool.Get().(map[string]any)
	clear(scratch)

	for k, v := range m {
		scratch[k] = DeepClone(v)
	}

	ret := make(map[string]any, len(scratch))
	for k, v := range scratch {
		ret[k] = v
	}

	clear(scratch)
	mapPool.Put(scratch)

	return ret
}

func deepCloneSlice(s []any) []any {
	if s == nil {
		return nil
	}

	ret := make([]any, len(s))
	for i, v := range s {
		ret[i] = DeepClone(v)
	}

	return ret
}
