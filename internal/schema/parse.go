package schema

import (
	"fmt"
	"regexp"

	"github.com/gopatchy/jsv/internal/filters"
	"github.com/gopatchy/jsv/internal/types"
	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
)

// Parse builds a Schema from a decoded document. Property order follows
// key order, since decoded maps carry none of their own. Unrecognized keys
// are ignored.
func Parse(doc any) (*Schema, error) {
	switch d := doc.(type) {
	case *Schema:
		return d, nil

	case map[string]any:
		return parseMap(d)

	default:
		return nil, fmt.Errorf("schema is %T (%w)", doc, errors.ErrInvalidSchema)
	}
}

// MustParse is Parse for schemas known to be valid, such as literals in
// tests and examples.
func MustParse(doc any) *Schema {
	s, err := Parse(doc)
	if err != nil {
		panic(err)
	}

	return s
}

func parseMap(m map[string]any) (*Schema, error) {
	s := &Schema{}

	for k, v := range utils.SortedMap(m) {
		err := s.set(k, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
	}

	return s, nil
}

func (s *Schema) set(k string, v any) error {
	var err error

	switch k {
	case "id", "$id":
		s.ID, err = parseString(v)

	case "name":
		s.Name, err = parseString(v)

	case "description":
		s.Description, err = parseString(v)

	case "$ref":
		s.Ref, err = parseString(v)

	case "type":
		s.Type, err = types.ParseList(v)
		if err != nil {
			err = fmt.Errorf("%w (%w)", err, errors.ErrInvalidSchema)
		}

	case "required":
		s.Required, err = parseBool(v)

	case "format":
		s.Format, err = parseString(v)

	case "enum":
		list, ok := v.([]any)
		if !ok {
			return invalid(v)
		}
		s.Enum = list

	case "pattern":
		s.Pattern, err = parsePattern(v)

	case "minLength":
		s.MinLength, err = parseInt(v)
	case "maxLength":
		s.MaxLength, err = parseInt(v)
	case "minItems":
		s.MinItems, err = parseInt(v)
	case "maxItems":
		s.MaxItems, err = parseInt(v)

	case "minimum":
		s.Minimum, err = parseFloat(v)
	case "maximum":
		s.Maximum, err = parseFloat(v)
	case "exclusiveMinimum":
		s.ExclusiveMinimum, err = parseFloat(v)
	case "exclusiveMaximum":
		s.ExclusiveMaximum, err = parseFloat(v)
	case "divisibleBy":
		s.DivisibleBy, err = parseFloat(v)

	case "items":
		s.Items, err = Parse(v)

	case "uniqueItems":
		s.UniqueItems, err = parseBool(v)

	case "dependencies":
		s.Dependencies, err = parseDependencies(v)

	case "conform":
		s.Conform, err = parseConform(v)

	case "filter":
		s.Filter = parseFilters(v)

	case "default":
		s.WithDefault(v)

	case "messages":
		s.Messages, err = parseMessages(v)

	case "message":
		s.Message, err = parseString(v)

	case "properties":
		s.Properties, err = parseProperties(v)

	case "patternProperties":
		s.PatternProperties, err = parsePatternProperties(v)

	case "additionalProperties":
		s.AdditionalProperties, err = parseAdditional(v)
	}

	return err
}

func invalid(v any) error {
	return fmt.Errorf("%#v: %w", v, errors.ErrInvalidSchema)
}

func parseString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid(v)
	}

	return s, nil
}

func parseBool(v any) (bool, error) {
	b, ok := utils.ToBool(v)
	if !ok {
		return false, invalid(v)
	}

	return b, nil
}

func parseInt(v any) (*int, error) {
	i, ok := utils.ToInt(v)
	if !ok {
		return nil, invalid(v)
	}

	return &i, nil
}

func parseFloat(v any) (*float64, error) {
	f, ok := utils.ToFloat(v)
	if !ok {
		return nil, invalid(v)
	}

	return &f, nil
}

func parsePattern(v any) (*regexp.Regexp, error) {
	switch p := v.(type) {
	case *regexp.Regexp:
		return p, nil

	case string:
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w (%w)", err, errors.ErrInvalidSchema)
		}

		return re, nil

	default:
		return nil, invalid(v)
	}
}

func parseDependencies(v any) (*Dependencies, error) {
	switch d := v.(type) {
	case string:
		return &Dependencies{Names: []string{d}, Single: true}, nil

	case map[string]any, *Schema:
		s, err := Parse(d)
		if err != nil {
			return nil, err
		}

		return &Dependencies{Schema: s}, nil

	default:
		names, ok := utils.ToStringList(v)
		if !ok {
			return nil, invalid(v)
		}

		return &Dependencies{Names: names}, nil
	}
}

func parseConform(v any) (Conform, error) {
	switch f := v.(type) {
	case Conform:
		return f, nil

	case func(any, map[string]any) bool:
		return f, nil

	case func(any) bool:
		return func(value any, _ map[string]any) bool {
			return f(value)
		}, nil

	default:
		return nil, invalid(v)
	}
}

// parseFilters never fails: unusable entries are kept so validation can
// report them against the data that reaches them.
func parseFilters(v any) []Filter {
	var list []any

	switch l := v.(type) {
	case []any:
		list = l

	case []string:
		for _, name := range l {
			list = append(list, name)
		}

	default:
		list = []any{v}
	}

	ret := make([]Filter, 0, len(list))

	for _, x := range list {
		ret = append(ret, parseFilter(x))
	}

	return ret
}

func parseFilter(v any) Filter {
	switch f := v.(type) {
	case string:
		return Filter{Name: f}

	case filters.Func:
		return Filter{Func: f}

	case func(any) (any, error):
		return Filter{Func: f}

	case func(any) any:
		return Filter{Func: func(value any) (any, error) {
			return f(value), nil
		}}

	default:
		return Filter{Invalid: v}
	}
}

func parseMessages(v any) (map[string]string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(v)
	}

	ret := make(map[string]string, len(m))

	for k, x := range m {
		s, ok := x.(string)
		if !ok {
			return nil, fmt.Errorf("%s: %w", k, invalid(x))
		}

		ret[k] = s
	}

	return ret, nil
}

func parseProperties(v any) ([]Property, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(v)
	}

	ret := make([]Property, 0, len(m))

	for name, x := range utils.SortedMap(m) {
		s, err := Parse(x)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		ret = append(ret, Property{Name: name, Schema: s})
	}

	return ret, nil
}

func parsePatternProperties(v any) ([]PatternProperty, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(v)
	}

	ret := make([]PatternProperty, 0, len(m))

	for pat, x := range utils.SortedMap(m) {
		re, err := parsePattern(pat)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pat, err)
		}

		s, err := Parse(x)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pat, err)
		}

		ret = append(ret, PatternProperty{Pattern: re, Schema: s})
	}

	return ret, nil
}

func parseAdditional(v any) (*Additional, error) {
	switch a := v.(type) {
	case bool:
		return &Additional{Allow: a}, nil

	default:
		s, err := Parse(a)
		if err != nil {
			return nil, err
		}

		return AdditionalSchema(s), nil
	}
}
