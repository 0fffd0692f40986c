package jsv

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"golang.org/x/exp/utf8string"

	"github.com/gopatchy/jsv/internal/formats"
	"github.com/gopatchy/jsv/internal/schema"
	"github.com/gopatchy/jsv/internal/types"
	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/log"
)

// check is one constraint: skipped unless declared, recorded unless pass
// returns true.
type check struct {
	attribute string
	declared  bool
	pass      func() bool
	actual    any
}

func (s *session) run(sl *slot, sch *schema.Schema, checks ...check) error {
	for _, c := range checks {
		if !c.declared || c.pass() {
			continue
		}

		err := s.fail(&Error{Attribute: c.attribute, Property: sl.name, Actual: c.actual}, sch, "")
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *session) validateProperty(sl *slot, sch *schema.Schema) error {
	sch, err := s.v.store.Deref(sch, s.root)
	if err != nil {
		return err
	}

	// A default is checked once. Checking it again from inside itself, as a
	// self-referencing schema would, never terminates.
	if s.opts.ValidateDefaultValue && sch.HasDefault && sl.name != "default" && !s.inDefault {
		s.inDefault = true
		err = s.validateProperty(&slot{
			object:  sl.object,
			name:    "default",
			value:   utils.DeepClone(sch.Default),
			present: true,
			set:     func(any) {},
		}, sch)
		s.inDefault = false

		if err != nil {
			return err
		}
	}

	if !sl.present {
		switch {
		case s.opts.ApplyDefaultValue && sch.HasDefault:
			log.Debugf("%s: applying default %v", sl.name, sch.Default)
			sl.set(utils.DeepClone(sch.Default))
			return nil

		case sch.Required && !sch.IsType(types.Any):
			return s.fail(&Error{Attribute: "required", Property: sl.name}, sch, "")

		default:
			return nil
		}
	}

	if generic, ok := utils.Generic(sl.value); ok {
		return s.validateGeneric(sl, sch, generic)
	}

	return s.validateValue(sl, sch)
}

// validateGeneric validates a typed Go container such as []string or
// map[string]string in its generic form. The generic form replaces the
// original only when validation changed it.
func (s *session) validateGeneric(sl *slot, sch *schema.Schema, generic any) error {
	before := utils.Canonical(generic)

	inner := &slot{
		object:  sl.object,
		name:    sl.name,
		value:   generic,
		present: true,
	}
	inner.set = func(x any) { inner.value = x }

	err := s.validateValue(inner, sch)

	if utils.Canonical(inner.value) != before {
		sl.set(inner.value)
	}

	return err
}

func (s *session) validateValue(sl *slot, sch *schema.Schema) error {
	if s.opts.Cast {
		s.cast(sl, sch)
	}

	if sch.Format != "" && s.opts.ValidateFormats {
		regs := []*formats.Registry{s.v.Formats}
		if s.opts.ValidateFormatExtensions {
			regs = append([]*formats.Registry{s.v.FormatExtensions}, regs...)
		}

		f, found := formats.Lookup(sch.Format, regs...)

		if (!found && s.opts.ValidateFormatsStrict) || (found && !f(sl.value)) {
			return s.fail(&Error{Attribute: "format", Property: sl.name, Actual: sl.value}, sch, "")
		}
	}

	err := s.run(sl, sch, check{
		attribute: "enum",
		declared:  sch.Enum != nil,
		pass: func() bool {
			return lo.ContainsBy(sch.Enum, func(x any) bool {
				return utils.Equal(x, sl.value)
			})
		},
		actual: sl.value,
	})
	if err != nil {
		return err
	}

	err = s.validateDependencies(sl, sch)
	if err != nil {
		return err
	}

	kind, ok := types.Classify(sl.value, true, sch.Type)
	if !ok {
		return s.fail(&Error{Attribute: "type", Property: sl.name, Actual: types.Of(sl.value).String()}, sch, "")
	}

	checkpoint := len(s.errors)

	err = s.run(sl, sch, check{
		attribute: "conform",
		declared:  sch.Conform != nil,
		pass:      func() bool { return sch.Conform(sl.value, sl.object) },
		actual:    sl.value,
	})
	if err != nil {
		return err
	}

	switch kind {
	case types.String:
		err = s.validateString(sl, sch)

	case types.Number, types.Integer:
		err = s.validateNumber(sl, sch)

	case types.Array:
		err = s.validateArray(sl, sch)

	case types.Object:
		if m, ok := sl.value.(map[string]any); ok && sch.HasObjectConstraints() {
			err = s.validateObject(m, sch)
		}
	}

	if err != nil {
		return err
	}

	if len(sch.Filter) > 0 && len(s.errors) == checkpoint {
		return s.applyFilters(sl, sch, kind)
	}

	return nil
}

func (s *session) validateDependencies(sl *slot, sch *schema.Schema) error {
	deps := sch.Dependencies
	if deps == nil {
		return nil
	}

	if deps.Schema != nil {
		return s.validateObject(sl.object, deps.Schema)
	}

	for _, name := range deps.Names {
		if _, found := sl.object[name]; found {
			continue
		}

		err := s.fail(&Error{Attribute: "dependencies", Property: sl.name}, sch, "")
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *session) validateString(sl *slot, sch *schema.Schema) error {
	str := sl.value.(string)
	n := utf8string.NewString(str).RuneCount()

	return s.run(sl, sch,
		check{
			attribute: "minLength",
			declared:  sch.MinLength != nil,
			pass:      func() bool { return n >= *sch.MinLength },
			actual:    n,
		},
		check{
			attribute: "maxLength",
			declared:  sch.MaxLength != nil,
			pass:      func() bool { return n <= *sch.MaxLength },
			actual:    n,
		},
		check{
			attribute: "pattern",
			declared:  sch.Pattern != nil,
			pass:      func() bool { return sch.Pattern.MatchString(str) },
			actual:    str,
		},
	)
}

func (s *session) validateNumber(sl *slot, sch *schema.Schema) error {
	f, _ := utils.ToFloat(sl.value)

	return s.run(sl, sch,
		check{
			attribute: "minimum",
			declared:  sch.Minimum != nil,
			pass:      func() bool { return f >= *sch.Minimum },
			actual:    sl.value,
		},
		check{
			attribute: "maximum",
			declared:  sch.Maximum != nil,
			pass:      func() bool { return f <= *sch.Maximum },
			actual:    sl.value,
		},
		check{
			attribute: "exclusiveMinimum",
			declared:  sch.ExclusiveMinimum != nil,
			pass:      func() bool { return f > *sch.ExclusiveMinimum },
			actual:    sl.value,
		},
		check{
			attribute: "exclusiveMaximum",
			declared:  sch.ExclusiveMaximum != nil,
			pass:      func() bool { return f < *sch.ExclusiveMaximum },
			actual:    sl.value,
		},
		check{
			attribute: "divisibleBy",
			declared:  sch.DivisibleBy != nil,
			pass:      func() bool { return divisible(f, *sch.DivisibleBy) },
			actual:    sl.value,
		},
	)
}

// divisible scales both operands by a power of ten large enough to make
// them whole before taking the remainder, so 0.2 is divisible by 0.01.
func divisible(a, e float64) bool {
	if e == 0 {
		return false
	}

	m := math.Pow(10, float64(max(utils.Decimals(a), utils.Decimals(e))))

	sa, se := math.Round(a*m), math.Round(e*m)
	if math.IsInf(sa, 0) || math.IsInf(se, 0) || se == 0 {
		return math.Mod(a, e) == 0
	}

	return math.Mod(sa, se) == 0
}

func (s *session) validateArray(sl *slot, sch *schema.Schema) error {
	list, _ := sl.value.([]any)

	if sch.Items != nil {
		for i, item := range list {
			err := s.validateProperty(&slot{
				object:  sl.object,
				name:    sl.name,
				value:   item,
				present: true,
				set: func(x any) {
					list[i] = x
				},
			}, sch.Items)
			if err != nil {
				return err
			}
		}
	}

	return s.run(sl, sch,
		check{
			attribute: "minItems",
			declared:  sch.MinItems != nil,
			pass:      func() bool { return len(list) >= *sch.MinItems },
			actual:    sl.value,
		},
		check{
			attribute: "maxItems",
			declared:  sch.MaxItems != nil,
			pass:      func() bool { return len(list) <= *sch.MaxItems },
			actual:    sl.value,
		},
		check{
			attribute: "uniqueItems",
			declared:  sch.UniqueItems,
			pass: func() bool {
				keys := lo.Map(list, func(x any, _ int) string { return utils.Canonical(x) })
				return len(lo.Uniq(keys)) == len(keys)
			},
			actual: sl.value,
		},
	)
}

func (s *session) cast(sl *slot, sch *schema.Schema) {
	var (
		cast any
		ok   bool
	)

	switch {
	case sch.IsType(types.Integer), sch.IsType(types.Number):
		if str, isString := sl.value.(string); isString {
			cast, ok = utils.ParseNumber(str)
		} else {
			cast, ok = utils.ToFloat(sl.value)
		}

	case sch.IsType(types.Boolean):
		cast, ok = castBool(sl.value)
	}

	if !ok {
		return
	}

	log.Debugf("%s: cast %#v to %#v", sl.name, sl.value, cast)

	sl.value = cast

	if s.opts.CastSource {
		sl.set(cast)
	}
}

func castBool(v any) (bool, bool) {
	switch v {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}

	if f, ok := utils.ToFloat(v); ok {
		switch f {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}

	return false, false
}

func (s *session) applyFilters(sl *slot, sch *schema.Schema, kind types.Kind) error {
	if kind == types.Array || kind == types.Object {
		return s.fail(&Error{Attribute: "filter", Property: sl.name, Actual: kind.String()}, sch,
			"bad property type for filtering: %{actual}")
	}

	for _, f := range sch.Filter {
		fn := f.Func

		switch {
		case fn != nil:

		case f.Name != "":
			var found bool

			fn, found = s.v.Filters.Get(f.Name)
			if !found {
				return s.fail(&Error{Attribute: "filter", Property: sl.name, Actual: f.Name}, sch,
					"unknown filter: %{actual}")
			}

		default:
			return s.fail(&Error{Attribute: "filter", Property: sl.name, Actual: fmt.Sprintf("%T", f.Invalid)}, sch,
				"bad filter type: %{actual}")
		}

		out, err := fn(sl.value)
		if err != nil {
			return s.fail(&Error{Attribute: "filter", Property: sl.name, Actual: err}, sch,
				"error during filtering: %{actual}")
		}

		log.Debugf("%s: filtered %#v to %#v", sl.name, sl.value, out)

		sl.value = out
		sl.set(out)
	}

	return nil
}
