// operations.go defines each Hyperspell operation once. The same run function
// backs the tool and the resource, so both surfaces return identical JSON.

package mcp

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/hyperspell"
	"github.com/hyperspell/hyperspell-mcp/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// operation is one adapter call exposed over MCP.
type operation struct {
	name        string // tool name
	title       string
	description string
	// uri is the resource URI or URI template. Empty for tool-only operations.
	uri      string
	action   string // audit log verb
	readOnly bool
	params   []mcp.ToolOption
	// target names what the call addresses, for the audit log.
	target func(args map[string]any) string
	run    func(ctx context.Context, args map[string]any) (any, error)
}

// isTemplate reports whether the resource URI has variables.
func (op operation) isTemplate() bool {
	return strings.Contains(op.uri, "{")
}

func (h *handlers) operations() []operation {
	return []operation{
		{
			name:        "list_collections",
			title:       "List Collections",
			description: adapter.DescListCollections,
			uri:         collectionsURI,
			action:      "list",
			readOnly:    true,
			target:      func(map[string]any) string { return "" },
			run: func(ctx context.Context, _ map[string]any) (any, error) {
				return h.svc.ListCollections(ctx)
			},
		},
		{
			name:        "get_collection",
			title:       "Get Collection",
			description: adapter.DescGetCollection,
			uri:         collectionTemplate,
			action:      "list",
			readOnly:    true,
			params: []mcp.ToolOption{
				mcp.WithString("collection_name", mcp.Required(), mcp.Description("Name of the collection")),
			},
			target: func(args map[string]any) string { return argString(args, "collection_name") },
			run: func(ctx context.Context, args map[string]any) (any, error) {
				name, err := requireString(args, "collection_name")
				if err != nil {
					return nil, err
				}
				return h.svc.GetCollection(ctx, name)
			},
		},
		{
			name:        "get_document",
			title:       "Get Document",
			description: adapter.DescGetDocument,
			uri:         documentTemplate,
			action:      "read",
			readOnly:    true,
			params: []mcp.ToolOption{
				mcp.WithNumber("document_id", mcp.Required(), mcp.Description("Numeric ID of the document")),
			},
			target: func(args map[string]any) string {
				if id, err := documentID(args); err == nil {
					return strconv.Itoa(id)
				}
				return ""
			},
			run: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := documentID(args)
				if err != nil {
					return nil, err
				}
				return h.svc.GetDocument(ctx, id)
			},
		},
		{
			name:        "search_hyperspell",
			title:       "Search Hyperspell",
			description: adapter.DescSearch,
			action:      "search",
			readOnly:    true,
			params: []mcp.ToolOption{
				mcp.WithString("query", mcp.Required(), mcp.Description("What to search for")),
				mcp.WithArray("collections",
					mcp.Description("Collections to search (default: the configured collection, or all)"),
					mcp.WithStringItems(),
				),
			},
			target: func(args map[string]any) string { return strings.Join(argStrings(args, "collections"), ",") },
			run: func(ctx context.Context, args map[string]any) (any, error) {
				q, err := requireString(args, "query")
				if err != nil {
					return nil, err
				}
				return h.svc.Search(ctx, q, argStrings(args, "collections"))
			},
		},
		{
			name:        "add_file",
			title:       "Add File",
			description: adapter.DescAddFile,
			action:      "add",
			params: []mcp.ToolOption{
				mcp.WithString("url", mcp.Required(), mcp.Description("URL of the file or web page")),
				mcp.WithString("collection", mcp.Description("Collection to add to (default: the configured collection)")),
			},
			target: func(args map[string]any) string { return argString(args, "url") },
			run: func(ctx context.Context, args map[string]any) (any, error) {
				u, err := requireString(args, "url")
				if err != nil {
					return nil, err
				}
				return h.svc.AddFile(ctx, u, argString(args, "collection"))
			},
		},
		{
			name:        "add_memory",
			title:       "Add Memory",
			description: adapter.DescAddMemory,
			action:      "add",
			params: []mcp.ToolOption{
				mcp.WithString("text", mcp.Required(), mcp.Description("Text of the memory")),
				mcp.WithString("title", mcp.Description("Optional title")),
				mcp.WithString("collection", mcp.Description("Collection to add to (default: the configured collection)")),
			},
			target: func(args map[string]any) string { return argString(args, "collection") },
			run: func(ctx context.Context, args map[string]any) (any, error) {
				text, err := requireText(args, "text")
				if err != nil {
					return nil, err
				}
				return h.svc.AddMemory(ctx, text, rawString(args, "title"), argString(args, "collection"))
			},
		},
	}
}

// register adds ops to s. With useTools every operation becomes a tool;
// operations without a resource form are tools regardless. With useResources
// every operation that has a URI becomes a resource or resource template.
func register(s *server.MCPServer, h *handlers, ops []operation, useTools, useResources bool) {
	for _, op := range ops {
		if useTools || op.uri == "" {
			s.AddTool(op.tool(), h.toolHandler(op))
		}
		if !useResources || op.uri == "" {
			continue
		}
		if op.isTemplate() {
			s.AddResourceTemplate(
				mcp.NewResourceTemplate(op.uri, op.title,
					mcp.WithTemplateDescription(op.description),
					mcp.WithTemplateMIMEType(mimeJSON),
				),
				server.ResourceTemplateHandlerFunc(h.resourceHandler(op)),
			)
		} else {
			s.AddResource(
				mcp.NewResource(op.uri, op.title,
					mcp.WithResourceDescription(op.description),
					mcp.WithMIMEType(mimeJSON),
				),
				h.resourceHandler(op),
			)
		}
	}
}

func (op operation) tool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(op.description),
		mcp.WithTitleAnnotation(op.title),
		mcp.WithReadOnlyHintAnnotation(op.readOnly),
		mcp.WithOpenWorldHintAnnotation(true),
	}
	if !op.readOnly {
		opts = append(opts, mcp.WithDestructiveHintAnnotation(false))
	}
	opts = append(opts, op.params...)
	return mcp.NewTool(op.name, opts...)
}

// toolHandler reports failures as a tool error result carrying the JSON
// Error record.
func (h *handlers) toolHandler(op operation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		v, err := h.invoke(ctx, "mcp:"+op.name, op, args)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(v)
	}
}

// invoke runs op with a fresh request id, logging and auditing the call.
func (h *handlers) invoke(ctx context.Context, source string, op operation, args map[string]any) (any, error) {
	ctx, reqID := hyperspell.NewRequestID(ctx)
	target := op.target(args)

	slog.Debug("operation", "source", source, "target", target, "request_id", reqID)

	l := log.Event(source, op.action).Target(target).RequestID(reqID)
	v, err := op.run(ctx, args)
	if err != nil {
		kind := adapter.Kind(err)
		l.Kind(kind)
		slog.Warn("operation failed", "source", source, "kind", kind, "request_id", reqID, "error", err)
	}
	l.Write(err)
	return v, err
}
