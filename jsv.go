// Package jsv validates decoded documents against schemas, reporting every
// violation rather than stopping at the first.
package jsv

import (
	"maps"
	"time"

	"github.com/gopatchy/jsv/internal/filters"
	"github.com/gopatchy/jsv/internal/formats"
	"github.com/gopatchy/jsv/internal/schema"
	"github.com/gopatchy/jsv/internal/utils"
)

// Observer is notified after every validation call.
type Observer interface {
	ObserveValidation(id string, report *Report, elapsed time.Duration)
}

// Validator owns a schema store, format and filter registries, message
// templates and instance options. It does no locking: concurrent Validate
// calls are safe only while nothing mutates the Validator.
type Validator struct {
	Formats          *FormatRegistry
	FormatExtensions *FormatRegistry
	Filters          *FilterRegistry
	Messages         map[string]string

	store     *schema.Store
	opts      Options
	observers []Observer
}

// Default backs the package-level convenience functions.
var Default = New()

// New creates a [Validator] with the built-in formats, filters and messages
// and default options.
func New() *Validator {
	return &Validator{
		Formats:          formats.Core(),
		FormatExtensions: formats.Extensions(),
		Filters:          filters.Builtin(),
		Messages:         maps.Clone(DefaultMessages),
		store:            schema.NewStore(),
		opts:             DefaultOptions(),
	}
}

// Add registers s under id, replacing any schema already there.
func (v *Validator) Add(id string, s *Schema) *Validator {
	v.store.Add(id, s)
	return v
}

// AddDocument parses a decoded schema document and registers it under id.
func (v *Validator) AddDocument(id string, doc any) error {
	s, err := schema.Parse(doc)
	if err != nil {
		return err
	}

	v.Add(id, s)

	return nil
}

// Remove unregisters id. Removing an unknown id is not an error.
func (v *Validator) Remove(id string) *Validator {
	v.store.Remove(id)
	return v
}

// Schema returns the schema registered under id.
func (v *Validator) Schema(id string) (*Schema, bool) {
	return v.store.Get(id)
}

// SchemaIDs lists registered ids in order.
func (v *Validator) SchemaIDs() []string {
	return v.store.IDs()
}

// SetOptions merges opts into the instance options.
func (v *Validator) SetOptions(opts ...Option) *Validator {
	v.opts = v.opts.apply(opts...)
	return v
}

func (v *Validator) Options() Options {
	return v.opts
}

// Observe registers o to be notified after every call.
func (v *Validator) Observe(o Observer) *Validator {
	v.observers = append(v.observers, o)
	return v
}

// Clone deep-copies a document, for callers that must not see the
// mutations validation makes.
func Clone(object map[string]any) map[string]any {
	ret, _ := utils.DeepClone(object).(map[string]any)
	return ret
}

func Add(id string, s *Schema) *Validator {
	return Default.Add(id, s)
}

func Remove(id string) *Validator {
	return Default.Remove(id)
}

func SetOptions(opts ...Option) *Validator {
	return Default.SetOptions(opts...)
}

func Validate(object map[string]any, id string, opts ...Option) (*Report, error) {
	return Default.Validate(object, id, opts...)
}
