package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gopatchy/jsv"
	"github.com/gopatchy/jsv/internal/format"
	"github.com/gopatchy/jsv/internal/utils"
)

func (s *Server) validateHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}

	ft, err := format.Get(parseOptionalString(args, "format", "json"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	schemaDoc, err := parseDocument(args, "schema", ft)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := parseDocument(args, "data", ft)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v := jsv.New().Observe(s.metrics)

	if raw := args["schemas"]; raw != nil {
		schemas, isMap := raw.(map[string]any)
		if !isMap {
			return mcp.NewToolResultError("schemas must be an object"), nil
		}

		for id, doc := range utils.SortedMap(schemas) {
			err = v.AddDocument(id, doc)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("schemas[%s]: %v", id, err)), nil
			}
		}
	}

	optMap, err := utils.MixinAny(map[string]any{}, args["options"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("options: %v", err)), nil
	}

	opts, err := jsv.OptionsFromMap(optMap)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sch, err := jsv.ParseSchema(schemaDoc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("schema: %v", err)), nil
	}

	id := utils.GetMapStringValue(schemaDoc, "$id")
	if id == "" {
		id = "schema"
	}

	v.Add(id, sch)

	report, err := v.Validate(data, id, opts...)
	if err != nil && report == nil {
		return mcp.NewToolResultError(fmt.Sprintf("Validation failed: %v", err)), nil
	}

	response := report.Export()
	response["data"] = data
	response["operation"] = "validate"

	if err != nil {
		response["error"] = err.Error()
	}

	resultJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(resultJSON)), nil
}

// parseDocument reads key as an object, or key+"Text" decoded with ft.
func parseDocument(args map[string]any, key string, ft *format.Format) (map[string]any, error) {
	if raw := args[key]; raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s must be an object, got %T", key, raw)
		}

		return m, nil
	}

	text := parseOptionalString(args, key+"Text", "")
	if text == "" {
		return nil, fmt.Errorf("%s or %sText is required", key, key)
	}

	m, err := ft.UnmarshalMap([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%sText: %w", key, err)
	}

	return m, nil
}

func parseOptionalString(args map[string]any, key string, defaultValue string) string {
	if val := args[key]; val != nil {
		if str, ok := val.(string); ok && str != "" {
			return str
		}
	}

	return defaultValue
}

func (s *Server) listHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v := jsv.New()

	response := map[string]any{
		"formats":          v.Formats.Names(),
		"formatExtensions": v.FormatExtensions.Names(),
		"filters":          v.Filters.Names(),
		"options":          utils.SortedKeys(jsv.DefaultOptions().Map()),
		"documentFormats":  format.Extensions(),
	}

	resultJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(resultJSON)), nil
}
