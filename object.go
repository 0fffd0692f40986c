package jsv

import (
	"github.com/samber/lo"

	"github.com/gopatchy/jsv/internal/schema"
	"github.com/gopatchy/jsv/internal/utils"
)

// slot is where a value being validated lives, so cast results and defaults
// can be written back to it.
type slot struct {
	object  map[string]any
	name    string
	value   any
	present bool
	set     func(any)
}

func field(object map[string]any, name string) *slot {
	v, found := object[name]

	return &slot{
		object:  object,
		name:    name,
		value:   v,
		present: found,
		set: func(x any) {
			object[name] = x
		},
	}
}

func (s *session) validateObject(object map[string]any, sch *schema.Schema) error {
	keys := utils.SortedKeys(object)
	visited := map[string]bool{}

	for _, p := range sch.Properties {
		visited[p.Name] = true

		err := s.validateProperty(field(object, p.Name), p.Schema)
		if err != nil {
			return err
		}
	}

	for _, pp := range sch.PatternProperties {
		for _, k := range keys {
			matched := pp.Pattern.MatchString(k)

			// Without the strict option every scanned key counts as
			// visited, matched or not.
			if matched || !s.opts.PatternPropertiesStrict {
				visited[k] = true
			}

			if !matched {
				continue
			}

			err := s.validateProperty(field(object, k), pp.Schema)
			if err != nil {
				return err
			}
		}
	}

	additional := sch.AdditionalProperties
	if additional == nil {
		additional = &schema.Additional{Allow: s.opts.AdditionalProperties}
	}

	unvisited := lo.Reject(keys, func(k string, _ int) bool {
		return visited[k]
	})

	switch {
	case additional.Schema != nil:
		for _, k := range unvisited {
			err := s.validateProperty(field(object, k), additional.Schema)
			if err != nil {
				return err
			}
		}

	case !additional.Allow:
		for _, k := range unvisited {
			err := s.fail(&Error{
				Attribute: "additionalProperties",
				Property:  k,
				Expected:  false,
				Actual:    object[k],
			}, sch, "")
			if err != nil {
				return err
			}
		}
	}

	return nil
}
