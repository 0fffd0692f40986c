package jsv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jsv"
)

func validate(t *testing.T, object map[string]any, doc map[string]any, opts ...jsv.Option) *jsv.Report {
	t.Helper()

	v := jsv.New()
	require.NoError(t, v.AddDocument("test", doc))

	report, err := v.Validate(object, "test", opts...)
	require.NoError(t, err)

	return report
}

func fieldSchema(constraints map[string]any) map[string]any {
	return map[string]any{
		"name": "Resource",
		"properties": map[string]any{
			"field": constraints,
		},
	}
}

func requireError(t *testing.T, report *jsv.Report, attribute, property string) *jsv.Error {
	t.Helper()

	for _, e := range report.Errors {
		if e.Attribute == attribute && e.Property == property {
			return e
		}
	}

	require.Failf(t, "missing error", "no %s error for %q in %v", attribute, property, report.Attributes())

	return nil
}
