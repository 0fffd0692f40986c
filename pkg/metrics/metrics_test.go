package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jsv"
)

func TestObserveValidation(t *testing.T) {
	t.Parallel()

	o := New(nil)

	v := jsv.New().Observe(o)
	require.NoError(t, v.AddDocument("person", map[string]any{
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "required": true},
			"age":  map[string]any{"type": "integer"},
		},
	}))

	_, err := v.Validate(map[string]any{"name": "x"}, "person")
	require.NoError(t, err)

	_, err = v.Validate(map[string]any{"age": "old"}, "person")
	require.NoError(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(o.validationsTotal.WithLabelValues("person", "true")))
	require.Equal(t, 1.0, testutil.ToFloat64(o.validationsTotal.WithLabelValues("person", "false")))
	require.Equal(t, 1.0, testutil.ToFloat64(o.errorsTotal.WithLabelValues("person", "type")))
	require.Equal(t, 1.0, testutil.ToFloat64(o.errorsTotal.WithLabelValues("person", "required")))
	require.Equal(t, 1, testutil.CollectAndCount(o.validationDuration))
}

func TestHandler(t *testing.T) {
	t.Parallel()

	o := New(nil)
	o.ObserveValidation("s", &jsv.Report{Valid: true}, 0)

	srv := httptest.NewServer(o.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `jsv_validations_total{schema="s",valid="true"} 1`)
}
