package jsv_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jsv"
	"github.com/gopatchy/jsv/pkg/errors"
)

func articleSchema() map[string]any {
	return map[string]any{
		"name": "Article",
		"properties": map[string]any{
			"title": map[string]any{
				"type":      "string",
				"maxLength": 140,
			},
			"date": map[string]any{
				"type":     "string",
				"format":   "date",
				"messages": map[string]any{"format": "must be a valid %{expected} and nothing else"},
			},
			"body": map[string]any{"type": "string"},
			"tags": map[string]any{
				"type":        "array",
				"uniqueItems": true,
				"minItems":    2,
				"items": map[string]any{
					"type":    "string",
					"pattern": regexp.MustCompile(`[a-z ]+`),
				},
			},
			"tuple": map[string]any{
				"type":     "array",
				"minItems": 2,
				"maxItems": 2,
				"items": map[string]any{
					"type": []any{"string", "number"},
				},
			},
			"author": map[string]any{
				"type":     "string",
				"pattern":  `(?i)^[\w ]+$`,
				"required": true,
				"messages": map[string]any{"required": "is essential for survival"},
			},
			"published": map[string]any{"type": "boolean", "default": false},
			"category":  map[string]any{"type": "string"},
			"palindrome": map[string]any{
				"type": "string",
				"conform": func(v any) bool {
					s := v.(string)
					r := []rune(s)
					for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
						r[i], r[j] = r[j], r[i]
					}
					return s == string(r)
				},
			},
		},
		"patternProperties": map[string]any{
			"^_": map[string]any{"type": "boolean", "default": false},
		},
	}
}

func article() map[string]any {
	return map[string]any{
		"title":      "Gimme some Gurus",
		"date":       "2012-02-04",
		"body":       "And I will pwn your codex.",
		"tags":       []any{"energy drinks", "code"},
		"tuple":      []any{"string0", 103},
		"author":     "cloudhead",
		"published":  true,
		"category":   "misc",
		"palindrome": "dennis sinned",
		"_flag":      true,
	}
}

func TestArticle(t *testing.T) {
	t.Parallel()

	report := validate(t, article(), articleSchema())
	require.True(t, report.Valid, "%v", report.Errors)
	require.Empty(t, report.Errors)

	tests := []struct {
		name      string
		mutate    func(map[string]any)
		attribute string
		property  string
		message   string
	}{
		{"missingAuthor", func(o map[string]any) { delete(o, "author") }, "required", "author", "is essential for survival"},
		{"patternProperty", func(o map[string]any) { o["_additionalFlag"] = "text" }, "type", "_additionalFlag", ""},
		{"duplicateTags", func(o map[string]any) { o["tags"] = []any{"a", "a"} }, "uniqueItems", "tags", ""},
		{"badTag", func(o map[string]any) { o["tags"] = []any{"a", "____"} }, "pattern", "tags", ""},
		{"tooFewTags", func(o map[string]any) { o["tags"] = []any{"x"} }, "minItems", "tags", ""},
		{"longTuple", func(o map[string]any) { o["tuple"] = []any{"a", 1, 2} }, "maxItems", "tuple", ""},
		{"badDate", func(o map[string]any) { o["date"] = "bad date" }, "format", "date", "must be a valid date and nothing else"},
		{"notPalindrome", func(o map[string]any) { o["palindrome"] = "bad palindrome" }, "conform", "palindrome", ""},
		{"badAuthor", func(o map[string]any) { o["author"] = "email@address.com" }, "pattern", "author", ""},
		{"longTitle", func(o map[string]any) { o["title"] = strings.Repeat("x", 141) }, "maxLength", "title", "is too long (maximum is 140 characters)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			object := article()
			tc.mutate(object)

			report := validate(t, object, articleSchema())
			require.False(t, report.Valid)

			e := requireError(t, report, tc.attribute, tc.property)
			if tc.message != "" {
				require.Equal(t, tc.message, e.Message)
			}
		})
	}
}

func TestArticleMissingOptional(t *testing.T) {
	t.Parallel()

	object := article()
	delete(object, "category")

	require.True(t, validate(t, object, articleSchema()).Valid)
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	v := jsv.New()
	require.NoError(t, v.AddDocument("article", articleSchema()))

	object := article()
	object["tags"] = []any{"a", "a"}
	delete(object, "author")

	first, err := v.Validate(object, "article")
	require.NoError(t, err)

	second, err := v.Validate(object, "article")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestSelfRef(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"properties": map[string]any{
			"value": map[string]any{"type": "integer"},
			"child": map[string]any{"$ref": "#"},
		},
	}

	valid := map[string]any{
		"value": 1,
		"child": map[string]any{
			"value": 2,
			"child": map[string]any{"value": 3},
		},
	}
	require.True(t, validate(t, valid, doc).Valid)

	invalid := map[string]any{
		"value": 1,
		"child": map[string]any{
			"value": 2,
			"child": map[string]any{"value": "three"},
		},
	}

	report := validate(t, invalid, doc)
	require.Equal(t, []string{"type"}, report.Attributes())
	require.Equal(t, "value", report.Errors[0].Property)
	require.Equal(t, "three", invalid["child"].(map[string]any)["child"].(map[string]any)["value"])
}

func TestRefToRegistered(t *testing.T) {
	t.Parallel()

	v := jsv.New()
	require.NoError(t, v.AddDocument("address", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"zip": map[string]any{"type": "string", "pattern": `^\d{5}$`},
		},
	}))
	require.NoError(t, v.AddDocument("person", map[string]any{
		"properties": map[string]any{
			"home": map[string]any{"$ref": "address"},
		},
	}))

	report, err := v.Validate(map[string]any{"home": map[string]any{"zip": "1234"}}, "person")
	require.NoError(t, err)
	require.Equal(t, []string{"pattern"}, report.Attributes())
}

func TestRefErrors(t *testing.T) {
	t.Parallel()

	v := jsv.New()
	require.NoError(t, v.AddDocument("missing", fieldSchema(map[string]any{"$ref": "nowhere"})))
	require.NoError(t, v.AddDocument("a", map[string]any{"$ref": "b"}))
	require.NoError(t, v.AddDocument("b", map[string]any{"$ref": "a"}))
	require.NoError(t, v.AddDocument("cycle", fieldSchema(map[string]any{"$ref": "a"})))

	_, err := v.Validate(map[string]any{"field": 1}, "missing")
	require.ErrorIs(t, err, errors.ErrSchemaNotFound)

	_, err = v.Validate(map[string]any{"field": 1}, "cycle")
	require.ErrorIs(t, err, errors.ErrRefCycle)
	require.ErrorIs(t, err, errors.ErrInvalidSchema)

	_, err = v.Validate(map[string]any{}, "unregistered")
	require.ErrorIs(t, err, errors.ErrSchemaNotFound)
}

func TestExitOnFirstError(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"properties": map[string]any{
			"a": map[string]any{"type": "string"},
			"b": map[string]any{"type": "string"},
		},
	}
	object := map[string]any{"a": 1, "b": 2}

	require.Len(t, validate(t, object, doc).Errors, 2)

	report := validate(t, object, doc, jsv.WithExitOnFirstError(true))
	require.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	require.Equal(t, "a", report.Errors[0].Property)
}

func TestFailOnFirstError(t *testing.T) {
	t.Parallel()

	v := jsv.New()
	require.NoError(t, v.AddDocument("test", map[string]any{
		"properties": map[string]any{
			"a": map[string]any{"type": "string"},
			"b": map[string]any{"type": "string"},
		},
	}))

	report, err := v.Validate(map[string]any{"a": 1, "b": 2}, "test", jsv.WithFailOnFirstError(true))
	require.ErrorIs(t, err, errors.ErrValidation)
	require.ErrorIs(t, err, errors.Err)

	var verr *jsv.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "type", verr.Info.Attribute)
	require.Equal(t, "a", verr.Info.Property)
	require.Equal(t, "must be of string type", verr.Info.Message)
	require.Contains(t, err.Error(), "must be of string type")

	require.NotNil(t, report)
	require.Len(t, report.Errors, 1)

	report, err = v.Validate(map[string]any{"a": "x", "b": "y"}, "test", jsv.WithFailOnFirstError(true))
	require.NoError(t, err)
	require.True(t, report.Valid)
}

func TestNilObject(t *testing.T) {
	t.Parallel()

	v := jsv.New()
	require.NoError(t, v.AddDocument("test", fieldSchema(map[string]any{"required": true})))

	report, err := v.Validate(nil, "test")
	require.NoError(t, err)
	require.Equal(t, []string{"required"}, report.Attributes())
}

func TestValidateSchema(t *testing.T) {
	t.Parallel()

	s := &jsv.Schema{
		Properties: []jsv.Property{
			{Name: "n", Schema: &jsv.Schema{Type: jsv.Types(jsv.Integer), Minimum: jsv.Ptr(1.0)}},
			{Name: "next", Schema: &jsv.Schema{Ref: jsv.SelfRef}},
		},
		AdditionalProperties: jsv.Deny(),
	}

	report, err := jsv.New().ValidateSchema(map[string]any{
		"n":    2,
		"next": map[string]any{"n": 0, "x": true},
	}, s)
	require.NoError(t, err)
	require.Equal(t, []string{"minimum", "additionalProperties"}, report.Attributes())
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		constraints map[string]any
		message     string
	}{
		{"builtin", map[string]any{"minimum": 18}, "must be greater than or equal to 18"},
		{"schemaMessage", map[string]any{"minimum": 18, "message": "too young for %{property}"}, "too young for age"},
		{"attributeMessage", map[string]any{
			"minimum":  18,
			"message":  "ignored",
			"messages": map[string]any{"minimum": "%{ACTUAL} < %{expected} (%{attribute})"},
		}, "12 < 18 (minimum)"},
		{"unknownToken", map[string]any{"minimum": 18, "message": "[%{nope}]"}, "[]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := validate(t, map[string]any{"age": 12}, fieldSchemaNamed("age", tc.constraints))
			require.Equal(t, tc.message, requireError(t, report, "minimum", "age").Message)
		})
	}
}

func TestFallbackMessage(t *testing.T) {
	t.Parallel()

	v := jsv.New()
	delete(v.Messages, "minimum")
	v.Add("test", &jsv.Schema{
		Properties: []jsv.Property{{Name: "n", Schema: &jsv.Schema{Minimum: jsv.Ptr(1.0)}}},
	})

	report, err := v.Validate(map[string]any{"n": 0}, "test")
	require.NoError(t, err)
	require.Equal(t, "no default message", report.Errors[0].Message)
}

func TestSetOptions(t *testing.T) {
	t.Parallel()

	v := jsv.New().SetOptions(jsv.WithCast(true))
	v.SetOptions(jsv.WithCastSource(true))

	opts := v.Options()
	require.True(t, opts.Cast)
	require.True(t, opts.CastSource)
	require.True(t, opts.ValidateFormats)

	require.NoError(t, v.AddDocument("test", fieldSchema(map[string]any{"type": "integer"})))

	object := map[string]any{"field": "7"}
	report, err := v.Validate(object, "test")
	require.NoError(t, err)
	require.True(t, report.Valid)
	require.Equal(t, 7.0, object["field"])

	// Per-call options override the instance.
	object = map[string]any{"field": "7"}
	report, err = v.Validate(object, "test", jsv.WithCast(false))
	require.NoError(t, err)
	require.False(t, report.Valid)
}

func TestStore(t *testing.T) {
	t.Parallel()

	v := jsv.New()
	v.Add("b", &jsv.Schema{}).Add("a", &jsv.Schema{})
	require.Equal(t, []string{"a", "b"}, v.SchemaIDs())

	v.Remove("a").Remove("missing")
	require.Equal(t, []string{"b"}, v.SchemaIDs())

	_, found := v.Schema("a")
	require.False(t, found)

	require.ErrorIs(t, v.AddDocument("bad", map[string]any{"type": "strnig"}), errors.ErrInvalidSchema)
}

type recordingObserver struct {
	ids    []string
	valid  []bool
	timing []time.Duration
}

func (o *recordingObserver) ObserveValidation(id string, report *jsv.Report, elapsed time.Duration) {
	o.ids = append(o.ids, id)
	o.valid = append(o.valid, report.Valid)
	o.timing = append(o.timing, elapsed)
}

func TestObserve(t *testing.T) {
	t.Parallel()

	o := &recordingObserver{}

	v := jsv.New().Observe(o)
	require.NoError(t, v.AddDocument("test", fieldSchema(map[string]any{"type": "string"})))

	_, err := v.Validate(map[string]any{"field": "x"}, "test")
	require.NoError(t, err)

	_, err = v.Validate(map[string]any{"field": 1}, "test")
	require.NoError(t, err)

	_, err = v.Validate(map[string]any{}, "missing")
	require.Error(t, err)

	require.Equal(t, []string{"test", "test"}, o.ids)
	require.Equal(t, []bool{true, false}, o.valid)
}

func TestClone(t *testing.T) {
	t.Parallel()

	source := map[string]any{"field": "42", "list": []any{"1"}}
	copied := jsv.Clone(source)

	report := validate(t, copied, fieldSchema(map[string]any{"type": "integer"}), jsv.WithCast(true), jsv.WithCastSource(true))
	require.True(t, report.Valid)
	require.Equal(t, 42.0, copied["field"])
	require.Equal(t, "42", source["field"])
}

func TestDefaultValidator(t *testing.T) {
	jsv.Add("default-test", jsv.MustParseSchema(fieldSchema(map[string]any{"type": "string"})))
	defer jsv.Remove("default-test")

	report, err := jsv.Validate(map[string]any{"field": 1}, "default-test")
	require.NoError(t, err)
	require.Equal(t, []string{"type"}, report.Attributes())
}
