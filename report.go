package jsv

import (
	"fmt"

	"github.com/gopatchy/jsv/internal/schema"
)

// Report is the result of one validation call.
type Report struct {
	Valid  bool
	Errors []*Error
}

// Attributes lists the failing attribute of each error, in order.
func (r *Report) Attributes() []string {
	ret := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		ret[i] = e.Attribute
	}

	return ret
}

// Export renders the report as a plain document suitable for any encoder.
// Schemas and functions in expected/actual values are replaced by short
// descriptions, and nil values are left out.
func (r *Report) Export() map[string]any {
	errs := make([]any, len(r.Errors))

	for i, e := range r.Errors {
		m := map[string]any{
			"attribute": e.Attribute,
			"property":  e.Property,
			"message":   e.Message,
		}

		// Omitted rather than null; toml has no null.
		if e.Expected != nil {
			m["expected"] = exportValue(e.Expected)
		}

		if e.Actual != nil {
			m["actual"] = exportValue(e.Actual)
		}

		errs[i] = m
	}

	return map[string]any{
		"valid":  r.Valid,
		"errors": errs,
	}
}

func exportValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool, float64, float32, int, int64, int32, uint, uint64:
		return val

	case *schema.Schema:
		if val.Name != "" {
			return fmt.Sprintf("schema %s", val.Name)
		}
		return "schema"

	case schema.Conform:
		return "function"

	case error:
		return val.Error()

	case []string:
		ret := make([]any, len(val))
		for i, x := range val {
			ret[i] = x
		}
		return ret

	case []any:
		ret := make([]any, len(val))
		for i, x := range val {
			ret[i] = exportValue(x)
		}
		return ret

	case map[string]any:
		ret := make(map[string]any, len(val))
		for k, x := range val {
			ret[k] = exportValue(x)
		}
		return ret

	default:
		return fmt.Sprintf("%v", val)
	}
}
