package utils

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

func ToBool(a any) (bool, bool) {
	v, ok := a.(bool)
	return v, ok
}

func ToString(a any) string {
	v, ok := a.(string)
	if !ok {
		return ""
	}
	return v
}

// ToInt accepts any numeric value with no fractional part.
func ToInt(a any) (int, bool) {
	f, ok := ToFloat(a)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}

	return int(f), true
}

// ToFloat normalizes every numeric kind a decoder can produce.
func ToFloat(a any) (float64, bool) {
	switch v := a.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func IsNumber(a any) bool {
	_, ok := ToFloat(a)
	return ok
}

// ParseNumber converts numeric text to a float. Blank strings are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// ToStringList accepts a string or a list of strings.
func ToStringList(a any) ([]string, bool) {
	switch v := a.(type) {
	case string:
		return []string{v}, true

	case []string:
		return v, true

	case []any:
		ret := make([]string, 0, len(v))

		for _, x := range v {
			s, ok := x.(string)
			if !ok {
				return nil, false
			}

			ret = append(ret, s)
		}

		return ret, true

	default:
		return nil, false
	}
}

// Decimals returns the number of digits after the decimal point in the
// shortest representation of f.
func Decimals(f float64) int {
	s := strconv.FormatFloat(math.Abs(f), 'f', -1, 64)

	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}

	return len(s) - i - 1
}

// Generic converts a typed slice, array or string-keyed map into the []any
// or map[string]any a decoder would have produced. Elements are copied as
// they are. It reports false, returning v, when no conversion applies.
func Generic(v any) (any, bool) {
	switch v.(type) {
	case nil, string, bool, json.Number, []any, map[string]any:
		return v, false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		ret := make([]any, rv.Len())
		for i := range ret {
			ret[i] = rv.Index(i).Interface()
		}

		return ret, true

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, false
		}

		ret := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			ret[iter.Key().String()] = iter.Value().Interface()
		}

		return ret, true

	default:
		return v, false
	}
}
