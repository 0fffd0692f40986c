// Package types classifies decoded values into the closed set of kinds a
// schema can declare.
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
)

type Kind int

const (
	Undefined Kind = iota
	String
	Number
	Integer
	Boolean
	Null
	Array
	Object
	Any

	// Unsupported is the kind of Go values no document decoder produces,
	// such as structs and channels. No declared type matches it except any.
	Unsupported
)

var kindNames = map[Kind]string{
	Undefined: "undefined",
	String:    "string",
	Number:    "number",
	Integer:   "integer",
	Boolean:   "boolean",
	Null:      "null",
	Array:     "array",
	Object:    "object",
	Any:       "any",

	Unsupported: "unsupported",
}

var kindsByName = map[string]Kind{
	"string":  String,
	"number":  Number,
	"integer": Integer,
	"boolean": Boolean,
	"null":    Null,
	"array":   Array,
	"object":  Object,
	"any":     Any,
}

func (k Kind) String() string {
	name, found := kindNames[k]
	if !found {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return name
}

// Parse maps a declared type name to its Kind. Names are case-insensitive
// and surrounding space is ignored.
func Parse(name string) (Kind, error) {
	k, found := kindsByName[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return Undefined, fmt.Errorf("%q: %w", name, errors.ErrInvalidType)
	}

	return k, nil
}

// ParseList accepts a single type name or a list of names.
func ParseList(v any) ([]Kind, error) {
	names, ok := utils.ToStringList(v)
	if !ok {
		return nil, fmt.Errorf("type %#v: %w", v, errors.ErrInvalidType)
	}

	ret := make([]Kind, 0, len(names))

	for _, name := range names {
		k, err := Parse(name)
		if err != nil {
			return nil, err
		}

		ret = append(ret, k)
	}

	return ret, nil
}

// Of returns the intrinsic kind of a present value. Integers report Number;
// Integer is only ever a declared kind.
func Of(v any) Kind {
	switch v.(type) {
	case nil:
		return Null

	case string:
		return String

	case bool:
		return Boolean

	case []any:
		return Array

	case map[string]any:
		return Object

	case json.Number:
		return Number

	default:
		if utils.IsNumber(v) {
			return Number
		}

		if generic, ok := utils.Generic(v); ok {
			return Of(generic)
		}

		return Unsupported
	}
}

// Matches reports whether a value satisfies a single declared kind.
func Matches(v any, present bool, k Kind) bool {
	if !present {
		return false
	}

	switch k {
	case Any:
		return true

	case Integer:
		f, ok := utils.ToFloat(v)
		return ok && !math.IsInf(f, 0) && f == math.Trunc(f)

	default:
		return Of(v) == k
	}
}

// Classify returns the first declared kind the value matches, in
// declaration order. With nothing declared there is no check and the
// value's intrinsic kind is returned.
func Classify(v any, present bool, declared []Kind) (Kind, bool) {
	if len(declared) == 0 {
		if !present {
			return Undefined, true
		}

		return Of(v), true
	}

	for _, k := range declared {
		if Matches(v, present, k) {
			return k, true
		}
	}

	return Undefined, false
}

// Names renders kinds as their declared names.
func Names(kinds []Kind) []string {
	ret := make([]string, len(kinds))
	for i, k := range kinds {
		ret[i] = k.String()
	}

	return ret
}
