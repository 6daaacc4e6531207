package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// stringArg pulls an optional string argument; a missing or mistyped value
// comes back as "".
func stringArg(request mcp.CallToolRequest, name string) string {
	value, _ := request.Params.Arguments[name].(string)
	return value
}

// intArg pulls an optional numeric argument. JSON numbers arrive as
// float64; the second return reports whether the argument was present.
func intArg(request mcp.CallToolRequest, name string) (int, bool) {
	value, ok := request.Params.Arguments[name].(float64)
	if !ok {
		return 0, false
	}
	return int(value), true
}

// boolArg pulls an optional boolean argument, returning fallback when it
// is missing or mistyped.
func boolArg(request mcp.CallToolRequest, name string, fallback bool) bool {
	value, ok := request.Params.Arguments[name].(bool)
	if !ok {
		return fallback
	}
	return value
}

// splitTags turns a comma-separated tag argument into trimmed names,
// dropping empties.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			tags = append(tags, name)
		}
	}
	return tags
}

// jsonResult serializes a value as the tool's text payload.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
