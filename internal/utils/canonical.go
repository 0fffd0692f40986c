package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Canonical returns a textual encoding of v in which equal values encode
// identically: map keys are sorted and numbers of any Go kind are normalized.
func Canonical(v any) string {
	b, err := json.Marshal(normalizeNumbers(v))
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}

	return string(b)
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		ret := make(map[string]any, len(val))
		for k, x := range val {
			ret[k] = normalizeNumbers(x)
		}
		return ret

	case []any:
		ret := make([]any, len(val))
		for i, x := range val {
			ret[i] = normalizeNumbers(x)
		}
		return ret

	default:
		if f, ok := ToFloat(v); ok {
			return f
		}

		return v
	}
}

// Equal compares decoded values. Numbers compare by value regardless of Go
// kind; maps and lists compare by canonical encoding.
func Equal(a, b any) bool {
	fa, aNum := ToFloat(a)
	fb, bNum := ToFloat(b)

	if aNum || bNum {
		return aNum && bNum && fa == fb
	}

	switch a.(type) {
	case map[string]any, []any:
		return Canonical(a) == Canonical(b)
	}

	switch av := a.(type) {
	case nil:
		return b == nil

	case string:
		bv, ok := b.(string)
		return ok && av == bv

	case bool:
		bv, ok := b.(bool)
		return ok && av == bv

	default:
		return false
	}
}

// Stringify renders a value for messages: nil is empty, lists are joined
// with commas, everything else uses its default format.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""

	case string:
		return val

	case []string:
		return strings.Join(val, ",")

	case []any:
		parts := make([]string, len(val))
		for i, x := range val {
			parts[i] = Stringify(x)
		}
		return strings.Join(parts, ",")

	case error:
		return val.Error()

	default:
		if f, ok := ToFloat(v); ok {
			return fmt.Sprintf("%v", f)
		}

		return fmt.Sprintf("%v", val)
	}
}
