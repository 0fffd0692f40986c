package jsv

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gopatchy/jsv/internal/schema"
	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
)

// Error is one constraint violation.
type Error struct {
	// Constraint that failed, e.g. "required" or "type"
	Attribute string
	// Property (or pattern-matched key) being checked
	Property string
	// Declared value of the constraint
	Expected any
	// Offending value; the value's type name for type errors
	Actual any
	// Interpolated human-readable message
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("attribute `%s` of property `%s` failed, expected `%s` actual `%s`: %s",
		e.Attribute, e.Property, utils.Stringify(e.Expected), utils.Stringify(e.Actual), e.Message)
}

// ValidationError is returned when FailOnFirstError stops a call.
type ValidationError struct {
	Info *Error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Info.Error(), errors.ErrValidation)
}

func (e *ValidationError) Unwrap() error {
	return errors.ErrValidation
}

// DefaultMessages are the built-in message templates.
var DefaultMessages = map[string]string{
	"required":             "is required",
	"minLength":            "is too short (minimum is %{expected} characters)",
	"maxLength":            "is too long (maximum is %{expected} characters)",
	"pattern":              "invalid input",
	"minimum":              "must be greater than or equal to %{expected}",
	"maximum":              "must be less than or equal to %{expected}",
	"exclusiveMinimum":     "must be greater than %{expected}",
	"exclusiveMaximum":     "must be less than %{expected}",
	"divisibleBy":          "must be divisible by %{expected}",
	"minItems":             "must contain more than %{expected} items",
	"maxItems":             "must contain less than %{expected} items",
	"uniqueItems":          "must hold a unique set of values",
	"format":               "is not a valid %{expected}",
	"conform":              "must conform to given constraint",
	"type":                 "must be of %{expected} type",
	"enum":                 "must be present in given enumerator",
	"dependencies":         "depends on %{expected}",
	"additionalProperties": "is not an allowed property",
}

const fallbackMessage = "no default message"

var tokenRE = regexp.MustCompile(`(?i)%\{([a-z]+)\}`)

// Interpolate replaces %{expected}, %{attribute}, %{property} and %{actual}
// in template. Unknown tokens and nil values render empty.
func Interpolate(template string, e *Error) string {
	return tokenRE.ReplaceAllStringFunc(template, func(m string) string {
		switch strings.ToLower(tokenRE.FindStringSubmatch(m)[1]) {
		case "expected":
			return utils.Stringify(e.Expected)
		case "attribute":
			return e.Attribute
		case "property":
			return e.Property
		case "actual":
			return utils.Stringify(e.Actual)
		default:
			return ""
		}
	})
}

func (v *Validator) message(e *Error, sch *schema.Schema, explicit string) string {
	template := explicit

	if template == "" {
		template = sch.Messages[e.Attribute]
	}

	if template == "" {
		template = sch.Message
	}

	if template == "" {
		template = v.Messages[e.Attribute]
	}

	if template == "" {
		template = fallbackMessage
	}

	return Interpolate(template, e)
}
