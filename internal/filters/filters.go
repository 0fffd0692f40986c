// Package filters holds named value transforms applied by the filter
// constraint once a value has passed its other checks.
package filters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
)

// Func transforms a value. A returned error means the value cannot be
// filtered.
type Func func(value any) (any, error)

type Registry struct {
	filters map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{
		filters: map[string]Func{},
	}
}

// Builtin returns a registry preloaded with the built-in filters.
func Builtin() *Registry {
	return NewRegistry().
		Add("trim", stringFilter(strings.TrimSpace)).
		Add("lowercase", stringFilter(strings.ToLower)).
		Add("uppercase", stringFilter(strings.ToUpper)).
		Add("collapse-spaces", stringFilter(collapseSpaces))
}

func (r *Registry) Add(name string, f Func) *Registry {
	r.filters[name] = f
	return r
}

func (r *Registry) Remove(name string) *Registry {
	delete(r.filters, name)
	return r
}

func (r *Registry) Get(name string) (Func, bool) {
	f, found := r.filters[name]
	return f, found
}

func (r *Registry) Names() []string {
	return utils.SortedKeys(r.filters)
}

func stringFilter(f func(string) string) Func {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%T is not a string (%w)", value, errors.ErrInvalidType)
		}

		return f(s), nil
	}
}

var spaceRE = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return spaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}
