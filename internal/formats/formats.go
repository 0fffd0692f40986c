// Package formats holds named predicates checked by the format constraint.
package formats

import (
	"regexp"

	"github.com/gopatchy/jsv/internal/utils"
)

// Func reports whether a value has the named format.
type Func func(value any) bool

type Registry struct {
	formats map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{
		formats: map[string]Func{},
	}
}

// Core returns a registry preloaded with the built-in formats.
func Core() *Registry {
	r := NewRegistry()

	for name, f := range core {
		r.Add(name, f)
	}

	return r
}

// Extensions returns a registry preloaded with the built-in extension
// formats.
func Extensions() *Registry {
	r := NewRegistry()

	for name, f := range extensions {
		r.Add(name, f)
	}

	return r
}

func (r *Registry) Add(name string, f Func) *Registry {
	r.formats[name] = f
	return r
}

// AddPattern compiles pattern and registers it under name.
func (r *Registry) AddPattern(name, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}

	r.Add(name, Regexp(re))

	return nil
}

func (r *Registry) Remove(name string) *Registry {
	delete(r.formats, name)
	return r
}

func (r *Registry) Get(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}

	f, found := r.formats[name]
	return f, found
}

func (r *Registry) Names() []string {
	return utils.SortedKeys(r.formats)
}

// Lookup returns the first registry's entry for name.
func Lookup(name string, regs ...*Registry) (Func, bool) {
	for _, r := range regs {
		if f, found := r.Get(name); found {
			return f, true
		}
	}

	return nil, false
}

// Regexp adapts a compiled expression. Non-string values are matched
// against their textual form.
func Regexp(re *regexp.Regexp) Func {
	return func(value any) bool {
		s, ok := value.(string)
		if !ok {
			s = utils.Stringify(value)
		}

		return re.MatchString(s)
	}
}
