package jsv

import (
	goerrors "errors"
	"fmt"
	"time"

	"github.com/gopatchy/jsv/internal/schema"
	"github.com/gopatchy/jsv/pkg/log"
)

// errStop unwinds the recursion once the first error has been recorded
// under ExitOnFirstError or FailOnFirstError.
var errStop = fmt.Errorf("stop validation")

// session is the per-call state: effective options, the schema that
// SelfRef resolves to, and the errors found so far.
type session struct {
	v      *Validator
	opts   Options
	root   *schema.Schema
	errors []*Error

	inDefault bool
}

// Validate checks object against the schema registered under id.
//
// The returned error is non-nil when id (or a $ref reached during
// validation) is unknown, when $refs form a cycle, or when FailOnFirstError
// stopped the call, in which case it is a *ValidationError and the report is
// returned alongside it. Validation may modify
// object in place; see [Clone].
func (v *Validator) Validate(object map[string]any, id string, opts ...Option) (*Report, error) {
	s, err := v.store.Resolve(id, nil)
	if err != nil {
		return nil, err
	}

	return v.validate(object, id, s, opts)
}

// ValidateSchema checks object against a schema that need not be
// registered. SelfRef within it refers to s.
func (v *Validator) ValidateSchema(object map[string]any, s *Schema, opts ...Option) (*Report, error) {
	return v.validate(object, s.ID, s, opts)
}

func (v *Validator) validate(object map[string]any, id string, root *schema.Schema, opts []Option) (*Report, error) {
	start := time.Now()

	sess := &session{
		v:      v,
		opts:   v.opts.apply(opts...),
		root:   root,
		errors: []*Error{},
	}

	if object == nil {
		object = map[string]any{}
	}

	log.Debugf("validating against %q", id)

	sch, err := v.store.Deref(root, root)
	if err != nil {
		return nil, err
	}

	err = sess.validateObject(object, sch)

	report := &Report{
		Valid:  len(sess.errors) == 0,
		Errors: sess.errors,
	}

	switch {
	case err == nil:

	case goerrors.Is(err, errStop):
		if sess.opts.FailOnFirstError {
			err = &ValidationError{Info: sess.errors[0]}
		} else {
			err = nil
		}

	default:
		return nil, err
	}

	for _, o := range v.observers {
		o.ObserveValidation(id, report, time.Since(start))
	}

	return report, err
}

// fail records e. Expected defaults to the schema's declared value for the
// attribute; message overrides the schema and built-in templates.
func (s *session) fail(e *Error, sch *schema.Schema, message string) error {
	if e.Expected == nil {
		e.Expected = sch.Expected(e.Attribute)
	}

	e.Message = s.v.message(e, sch, message)

	s.errors = append(s.errors, e)

	if s.opts.ExitOnFirstError || s.opts.FailOnFirstError {
		return errStop
	}

	return nil
}
