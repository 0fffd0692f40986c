package jsv

import (
	"fmt"
	"strconv"

	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
)

// Options controls a validation call. The effective options for a call are
// DefaultOptions, then the Validator's SetOptions, then the call's own
// options, each applied field by field.
type Options struct {
	// Enforce format constraints
	ValidateFormats bool
	// Unknown format names are errors instead of passing
	ValidateFormatsStrict bool
	// Consult FormatExtensions before Formats
	ValidateFormatExtensions bool
	// Coerce numeric and boolean strings to their declared type
	Cast bool
	// Policy for schemas that omit additionalProperties
	AdditionalProperties bool
	// Write cast values back into the validated object
	CastSource bool
	// Write default values into missing properties
	ApplyDefaultValue bool
	// Check default values against their own schema
	ValidateDefaultValue bool
	// Stop after the first error and return the report
	ExitOnFirstError bool
	// Stop after the first error and return a *ValidationError
	FailOnFirstError bool
	// patternProperties marks only matching keys as visited
	PatternPropertiesStrict bool
}

func DefaultOptions() Options {
	return Options{
		ValidateFormats:          true,
		ValidateFormatExtensions: true,
		AdditionalProperties:     true,
	}
}

type Option func(*Options)

var optionFields = map[string]func(*Options) *bool{
	"validateFormats":          func(o *Options) *bool { return &o.ValidateFormats },
	"validateFormatsStrict":    func(o *Options) *bool { return &o.ValidateFormatsStrict },
	"validateFormatExtensions": func(o *Options) *bool { return &o.ValidateFormatExtensions },
	"cast":                     func(o *Options) *bool { return &o.Cast },
	"additionalProperties":     func(o *Options) *bool { return &o.AdditionalProperties },
	"castSource":               func(o *Options) *bool { return &o.CastSource },
	"applyDefaultValue":        func(o *Options) *bool { return &o.ApplyDefaultValue },
	"validateDefaultValue":     func(o *Options) *bool { return &o.ValidateDefaultValue },
	"exitOnFirstError":         func(o *Options) *bool { return &o.ExitOnFirstError },
	"failOnFirstError":         func(o *Options) *bool { return &o.FailOnFirstError },
	"patternPropertiesStrict":  func(o *Options) *bool { return &o.PatternPropertiesStrict },
}

func with(name string, v bool) Option {
	field := optionFields[name]

	return func(o *Options) {
		*field(o) = v
	}
}

func WithValidateFormats(v bool) Option          { return with("validateFormats", v) }
func WithValidateFormatsStrict(v bool) Option    { return with("validateFormatsStrict", v) }
func WithValidateFormatExtensions(v bool) Option { return with("validateFormatExtensions", v) }
func WithCast(v bool) Option                     { return with("cast", v) }
func WithAdditionalProperties(v bool) Option     { return with("additionalProperties", v) }
func WithCastSource(v bool) Option               { return with("castSource", v) }
func WithApplyDefaultValue(v bool) Option        { return with("applyDefaultValue", v) }
func WithValidateDefaultValue(v bool) Option     { return with("validateDefaultValue", v) }
func WithExitOnFirstError(v bool) Option         { return with("exitOnFirstError", v) }
func WithFailOnFirstError(v bool) Option         { return with("failOnFirstError", v) }
func WithPatternPropertiesStrict(v bool) Option  { return with("patternPropertiesStrict", v) }

// WithOptions replaces every field.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}

// OptionsFromMap converts an option-name map, as decoded from a config
// document, into Options. Only the names present are set. Values are bools
// or their text form.
func OptionsFromMap(m map[string]any) ([]Option, error) {
	ret := []Option{}

	for name, v := range utils.SortedMap(m) {
		if _, found := optionFields[name]; !found {
			return nil, fmt.Errorf("%s: %w", name, errors.ErrInvalidOption)
		}

		b, ok := utils.ToBool(v)
		if s, isString := v.(string); isString {
			parsed, err := strconv.ParseBool(s)
			b, ok = parsed, err == nil
		}

		if !ok {
			return nil, fmt.Errorf("%s=%#v: %w", name, v, errors.ErrInvalidOption)
		}

		ret = append(ret, with(name, b))
	}

	return ret, nil
}

// Map returns the options keyed by name, the inverse of OptionsFromMap.
func (o Options) Map() map[string]any {
	ret := make(map[string]any, len(optionFields))

	for name, field := range optionFields {
		ret[name] = *field(&o)
	}

	return ret
}

func (o Options) apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
