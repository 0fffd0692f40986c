package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jsv/internal/format"
	"github.com/gopatchy/jsv/pkg/errors"
)

func TestGet(t *testing.T) {
	t.Parallel()

	for _, name := range format.Extensions() {
		f, err := format.Get(name)
		require.NoError(t, err)
		require.Equal(t, name, f.Name)
	}

	_, err := format.Get("xml")
	require.ErrorIs(t, err, errors.ErrUnknownFormat)
}

func TestForPath(t *testing.T) {
	t.Parallel()

	f, err := format.ForPath("schemas/person.yaml", "json")
	require.NoError(t, err)
	require.Equal(t, "yaml", f.Name)

	f, err = format.ForPath("-", "toml")
	require.NoError(t, err)
	require.Equal(t, "toml", f.Name)

	f, err = format.ForPath("README", "json")
	require.NoError(t, err)
	require.Equal(t, "json", f.Name)
}

func TestJSONStream(t *testing.T) {
	t.Parallel()

	f, err := format.Get("jsonl")
	require.NoError(t, err)

	docs, err := f.UnmarshalStream([]byte("{\"a\":1}\n{\"b\":[true,null]}\n"))
	require.NoError(t, err)
	require.Equal(t, []any{
		map[string]any{"a": 1.0},
		map[string]any{"b": []any{true, nil}},
	}, docs)

	out, err := f.MarshalStream(docs)
	require.NoError(t, err)
	require.Equal(t, "{\"a\":1}\n{\"b\":[true,null]}\n", string(out))
}

func TestJSONPretty(t *testing.T) {
	t.Parallel()

	f, err := format.Get("json-pretty")
	require.NoError(t, err)

	out, err := f.Marshal(map[string]any{"a": []any{1}})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}\n", string(out))
}

func TestUnmarshalSingle(t *testing.T) {
	t.Parallel()

	f, err := format.Get("json")
	require.NoError(t, err)

	_, err = f.Unmarshal([]byte("{} {}"))
	require.ErrorIs(t, err, errors.ErrDecode)

	_, err = f.Unmarshal([]byte("{"))
	require.ErrorIs(t, err, errors.ErrDecode)

	_, err = f.UnmarshalMap([]byte("[1]"))
	require.ErrorIs(t, err, errors.ErrDecode)

	m, err := f.UnmarshalMap([]byte(`{"x":"y"}`))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"x": "y"}, m)
}

func TestYAML(t *testing.T) {
	t.Parallel()

	f, err := format.Get("yaml")
	require.NoError(t, err)

	doc, err := f.Unmarshal([]byte(`
base: &base
  type: string
  minLength: 2
name:
  <<: *base
  required: true
size: 0x10
ratio: 1.5
when: 2024-01-02
empty: ~
`))
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"base":  map[string]any{"type": "string", "minLength": 2},
		"name":  map[string]any{"type": "string", "minLength": 2, "required": true},
		"size":  16,
		"ratio": 1.5,
		"when":  "2024-01-02",
		"empty": nil,
	}, doc)

	docs, err := f.UnmarshalStream([]byte("a: 1\n---\nb: 2\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	out, err := f.Marshal(map[string]any{"valid": true})
	require.NoError(t, err)
	require.Equal(t, "valid: true\n", string(out))
}

func TestTOML(t *testing.T) {
	t.Parallel()

	f, err := format.Get("toml")
	require.NoError(t, err)

	docs, err := f.UnmarshalStream([]byte("a = 1\nday = 2024-01-02\n---\nb = \"x\"\n"))
	require.NoError(t, err)
	require.Equal(t, []any{
		map[string]any{"a": int64(1), "day": "2024-01-02"},
		map[string]any{"b": "x"},
	}, docs)

	_, err = f.MarshalStream([]any{[]any{1}})
	require.ErrorIs(t, err, errors.ErrInvalidType)

	out, err := f.Marshal(map[string]any{"cast": true})
	require.NoError(t, err)
	require.Equal(t, "cast = true\n", string(out))
}

func TestProperties(t *testing.T) {
	t.Parallel()

	f, err := format.Get("properties")
	require.NoError(t, err)

	out, err := f.Marshal(map[string]any{
		"db":   map[string]any{"host": "localhost", "port": 5432},
		"tags": []any{"a", "b"},
	})
	require.NoError(t, err)
	require.Equal(t, "db.host=localhost\ndb.port=5432\ntags=a,b\n", string(out))

	doc, err := f.Unmarshal(out)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"db":   map[string]any{"host": "localhost", "port": "5432"},
		"tags": "a,b",
	}, doc)

	_, err = f.MarshalStream([]any{map[string]any{}, map[string]any{}})
	require.ErrorIs(t, err, errors.ErrEncode)
}
