package main

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gopatchy/jsv/pkg/version"
)

func (s *Server) versionHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bi := version.GetVersion()
	if bi == nil {
		return mcp.NewToolResultError("failed to get build information"), nil
	}

	resultJSON, err := json.MarshalIndent(bi, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(resultJSON)), nil
}
