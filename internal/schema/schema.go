// Package schema models validation schemas as typed records and keeps the
// store that schema references resolve against.
package schema

import (
	"regexp"

	"github.com/gopatchy/jsv/internal/filters"
	"github.com/gopatchy/jsv/internal/types"
)

// Conform is a caller-supplied predicate over a value and the object that
// holds it.
type Conform func(value any, object map[string]any) bool

type Property struct {
	Name   string
	Schema *Schema
}

type PatternProperty struct {
	Pattern *regexp.Regexp
	Schema  *Schema
}

// Additional is the additionalProperties policy: Schema set means validate
// unlisted properties against it, otherwise Allow decides.
type Additional struct {
	Allow  bool
	Schema *Schema
}

// Dependencies is either a list of sibling property names that must be
// present, or a schema the containing object must satisfy.
type Dependencies struct {
	Names  []string
	Single bool
	Schema *Schema
}

// Filter is one entry of a filter declaration: a registry name, a function,
// or (when neither) the unusable value that was declared.
type Filter struct {
	Name    string
	Func    filters.Func
	Invalid any
}

type Schema struct {
	ID          string
	Name        string
	Description string

	Ref string

	Type     []types.Kind
	Required bool
	Format   string
	Enum     []any

	Pattern   *regexp.Regexp
	MinLength *int
	MaxLength *int

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	DivisibleBy      *float64

	Items       *Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	Dependencies *Dependencies
	Conform      Conform
	Filter       []Filter

	Default    any
	HasDefault bool

	Messages map[string]string
	Message  string

	Properties           []Property
	PatternProperties    []PatternProperty
	AdditionalProperties *Additional
}

func Ptr[T any](v T) *T {
	return &v
}

// Deny is the additionalProperties: false policy.
func Deny() *Additional {
	return &Additional{Allow: false}
}

// Allow is the additionalProperties: true policy.
func Allow() *Additional {
	return &Additional{Allow: true}
}

// AdditionalSchema validates unlisted properties against s.
func AdditionalSchema(s *Schema) *Additional {
	return &Additional{Schema: s}
}

// WithDefault sets a default value, including nil.
func (s *Schema) WithDefault(v any) *Schema {
	s.Default = v
	s.HasDefault = true
	return s
}

// Property returns the sub-schema declared for name, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}

	return nil
}

// IsType reports whether exactly one type is declared and it is k.
func (s *Schema) IsType(k types.Kind) bool {
	return len(s.Type) == 1 && s.Type[0] == k
}

// HasObjectConstraints reports whether any object-level keyword is declared.
func (s *Schema) HasObjectConstraints() bool {
	return s.Properties != nil || s.PatternProperties != nil || s.AdditionalProperties != nil
}

// Expected returns the declared value of the named constraint, as reported
// in errors and message templates.
func (s *Schema) Expected(attribute string) any {
	switch attribute {
	case "type":
		switch len(s.Type) {
		case 0:
			return nil
		case 1:
			return s.Type[0].String()
		default:
			return types.Names(s.Type)
		}

	case "required":
		return s.Required

	case "format":
		return s.Format

	case "enum":
		return s.Enum

	case "pattern":
		if s.Pattern == nil {
			return nil
		}
		return s.Pattern.String()

	case "minLength":
		return deref(s.MinLength)
	case "maxLength":
		return deref(s.MaxLength)
	case "minimum":
		return deref(s.Minimum)
	case "maximum":
		return deref(s.Maximum)
	case "exclusiveMinimum":
		return deref(s.ExclusiveMinimum)
	case "exclusiveMaximum":
		return deref(s.ExclusiveMaximum)
	case "divisibleBy":
		return deref(s.DivisibleBy)
	case "minItems":
		return deref(s.MinItems)
	case "maxItems":
		return deref(s.MaxItems)

	case "items":
		return s.Items

	case "uniqueItems":
		return s.UniqueItems

	case "dependencies":
		switch {
		case s.Dependencies == nil:
			return nil
		case s.Dependencies.Schema != nil:
			return s.Dependencies.Schema
		case s.Dependencies.Single && len(s.Dependencies.Names) == 1:
			return s.Dependencies.Names[0]
		default:
			return s.Dependencies.Names
		}

	case "conform":
		return s.Conform

	case "filter":
		names := make([]any, 0, len(s.Filter))
		for _, f := range s.Filter {
			if f.Name != "" {
				names = append(names, f.Name)
			}
		}
		return names

	case "default":
		return s.Default

	case "additionalProperties":
		switch {
		case s.AdditionalProperties == nil:
			return nil
		case s.AdditionalProperties.Schema != nil:
			return s.AdditionalProperties.Schema
		default:
			return s.AdditionalProperties.Allow
		}

	default:
		return nil
	}
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}

	return *p
}
