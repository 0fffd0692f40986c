package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jsv/pkg/metrics"
)

func callTool(t *testing.T, s *Server, name string, args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	var (
		res *mcp.CallToolResult
		err error
	)

	switch name {
	case "validate":
		res, err = s.validateHandler(context.Background(), req)
	case "list":
		res, err = s.listHandler(context.Background(), req)
	default:
		t.Fatalf("unknown tool %s", name)
	}

	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)

	return text.Text, res.IsError
}

func newServer() *Server {
	return &Server{metrics: metrics.New(nil)}
}

func TestValidateTool(t *testing.T) {
	t.Parallel()

	s := newServer()

	text, isError := callTool(t, s, "validate", map[string]any{
		"schema": map[string]any{
			"properties": map[string]any{
				"name": map[string]any{"type": "string", "required": true},
				"age":  map[string]any{"type": "integer"},
				"home": map[string]any{"$ref": "address"},
			},
		},
		"schemas": map[string]any{
			"address": map[string]any{
				"properties": map[string]any{
					"zip": map[string]any{"type": "string"},
				},
			},
		},
		"data":    map[string]any{"age": "12", "home": map[string]any{"zip": 1}},
		"options": map[string]any{"cast": true, "castSource": true},
	})
	require.False(t, isError, text)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &resp))

	require.Equal(t, false, resp["valid"])
	require.Equal(t, 12.0, resp["data"].(map[string]any)["age"])

	errs := resp["errors"].([]any)
	require.Len(t, errs, 2)
	require.Equal(t, "type", errs[0].(map[string]any)["attribute"])
	require.Equal(t, "zip", errs[0].(map[string]any)["property"])
	require.Equal(t, "required", errs[1].(map[string]any)["attribute"])

	count, err := testutil.GatherAndCount(s.metrics.Registry(), "jsv_validations_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestValidateToolText(t *testing.T) {
	t.Parallel()

	text, isError := callTool(t, newServer(), "validate", map[string]any{
		"format":     "yaml",
		"schemaText": "properties:\n  tags:\n    uniqueItems: true\n",
		"dataText":   "tags: [a, a]\n",
	})
	require.False(t, isError, text)
	require.Contains(t, text, `"uniqueItems"`)
}

func TestValidateToolErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missingSchema", map[string]any{"data": map[string]any{}}, "schema or schemaText is required"},
		{"badFormat", map[string]any{"format": "xml"}, "unknown format"},
		{"badOption", map[string]any{"schema": map[string]any{}, "data": map[string]any{}, "options": map[string]any{"nope": true}}, "invalid option"},
		{"badSchema", map[string]any{"schema": map[string]any{"type": 5}, "data": map[string]any{}}, "invalid schema"},
		{"badRef", map[string]any{"schema": map[string]any{"$ref": "nowhere"}, "data": map[string]any{}}, "schema not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			text, isError := callTool(t, newServer(), "validate", tc.args)
			require.True(t, isError)
			require.Contains(t, text, tc.want)
		})
	}
}

func TestListTool(t *testing.T) {
	t.Parallel()

	text, isError := callTool(t, newServer(), "list", nil)
	require.False(t, isError)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.Contains(t, resp["formats"], "email")
	require.Contains(t, resp["formatExtensions"], "url")
	require.Contains(t, resp["filters"], "trim")
	require.Contains(t, resp["options"], "cast")
}
