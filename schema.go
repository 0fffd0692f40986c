package jsv

import (
	"github.com/gopatchy/jsv/internal/filters"
	"github.com/gopatchy/jsv/internal/formats"
	"github.com/gopatchy/jsv/internal/schema"
	"github.com/gopatchy/jsv/internal/types"
)

type (
	Schema          = schema.Schema
	Property        = schema.Property
	PatternProperty = schema.PatternProperty
	Additional      = schema.Additional
	Dependencies    = schema.Dependencies
	Filter          = schema.Filter
	Conform         = schema.Conform

	Kind = types.Kind

	FormatRegistry = formats.Registry
	FormatFunc     = formats.Func
	FilterRegistry = filters.Registry
	FilterFunc     = filters.Func
)

const (
	String  = types.String
	Number  = types.Number
	Integer = types.Integer
	Boolean = types.Boolean
	Null    = types.Null
	Array   = types.Array
	Object  = types.Object
	Any     = types.Any

	// SelfRef as a $ref names the schema being validated.
	SelfRef = schema.SelfRef
)

// ParseSchema builds a [Schema] from a decoded document.
func ParseSchema(doc any) (*Schema, error) {
	return schema.Parse(doc)
}

// MustParseSchema is ParseSchema that panics on error.
func MustParseSchema(doc any) *Schema {
	return schema.MustParse(doc)
}

func Ptr[T any](v T) *T {
	return schema.Ptr(v)
}

func Deny() *Additional {
	return schema.Deny()
}

func Allow() *Additional {
	return schema.Allow()
}

func AdditionalSchema(s *Schema) *Additional {
	return schema.AdditionalSchema(s)
}

// Types is a convenience for building Schema.Type.
func Types(kinds ...Kind) []Kind {
	return kinds
}
