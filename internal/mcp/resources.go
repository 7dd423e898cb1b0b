// resources.go serves the read operations as MCP resources.
//
// URIs: collection:// lists collections, collection://{collection_name} lists
// the documents in a collection, document://{document_id} fetches a document.
// Contents are the same JSON the equivalent tool returns.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	collectionsURI     = "collection://"
	collectionTemplate = "collection://{collection_name}"
	documentTemplate   = "document://{document_id}"

	mimeJSON = "application/json"
)

var (
	// ErrInvalidURI indicates a resource URI that does not match the
	// operation's template.
	ErrInvalidURI = errors.New("invalid URI")
)

// resourceHandler returns failures to the MCP runtime, which reports them as
// JSON-RPC errors.
func (h *handlers) resourceHandler(op operation) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := req.Params.URI
		args, err := parseResourceURI(op.uri, uri)
		if err != nil {
			return nil, err
		}
		v, err := h.invoke(ctx, "resource:"+uri, op, args)
		if err != nil {
			return nil, err
		}
		data, err := marshal(v)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: mimeJSON,
				Text:     string(data),
			},
		}, nil
	}
}

// parseResourceURI extracts the template variables from uri. Templates hold
// at most one variable, after the scheme.
func parseResourceURI(template, uri string) (map[string]any, error) {
	open := strings.Index(template, "{")
	if open == -1 {
		if uri != template {
			return nil, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
		}
		return map[string]any{}, nil
	}

	prefix := template[:open]
	name := strings.TrimSuffix(template[open+1:], "}")
	if !strings.HasPrefix(uri, prefix) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	raw := strings.TrimPrefix(uri, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	value, err := url.PathUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidURI, uri, err)
	}
	return map[string]any{name: value}, nil
}
