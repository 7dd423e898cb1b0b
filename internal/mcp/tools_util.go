// tools_util.go extracts typed arguments from MCP's generic argument map and
// renders results.
//
// Optional arguments are read permissively: a missing or mistyped optional
// value falls back to its zero value. Required arguments fail with
// adapter.ErrInvalidInput.

package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/mark3labs/mcp-go/mcp"
)

// argString returns a string argument, or "" if missing or not a string.
func argString(args map[string]any, name string) string {
	if v, ok := args[name].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// requireString returns a non-empty string argument.
func requireString(args map[string]any, name string) (string, error) {
	v := argString(args, name)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", adapter.ErrInvalidInput, name)
	}
	return v, nil
}

// rawString returns a string argument exactly as sent, or "" if missing or
// not a string.
func rawString(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return v
}

// requireText returns a string argument exactly as sent. Whitespace-only
// values count as missing.
func requireText(args map[string]any, name string) (string, error) {
	v := rawString(args, name)
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s is required", adapter.ErrInvalidInput, name)
	}
	return v, nil
}

// argStrings returns a string array argument. A single string is accepted as
// a one-element array. Non-string and empty elements are skipped.
func argStrings(args map[string]any, name string) []string {
	switch v := args[name].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []string:
		return nonEmpty(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return nonEmpty(out)
	}
	return nil
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// documentID reads document_id. Tool calls send a JSON number; resource URIs
// carry it as a decimal string.
func documentID(args map[string]any) (int, error) {
	const name = "document_id"
	var id int
	switch v := args[name].(type) {
	case nil:
		return 0, fmt.Errorf("%w: %s is required", adapter.ErrInvalidInput, name)
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", adapter.ErrInvalidInput, name, v)
		}
		id = int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer, got %s", adapter.ErrInvalidInput, name, v)
		}
		id = int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer, got %q", adapter.ErrInvalidInput, name, v)
		}
		id = n
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", adapter.ErrInvalidInput, name, v)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", adapter.ErrInvalidInput, name, id)
	}
	return id, nil
}

// marshal renders v as indented JSON.
func marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// jsonResult serialises v as pretty-printed JSON in a text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := marshal(v)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult wraps err's Error record in a tool error result.
func errorResult(err error) *mcp.CallToolResult {
	data, mErr := json.Marshal(adapter.Describe(err))
	if mErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}
