package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hyperspell/hyperspell-mcp/internal/adapter"
	"github.com/hyperspell/hyperspell-mcp/internal/config"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHyperspell serves canned API responses and records request bodies.
type fakeHyperspell struct {
	mu     sync.Mutex
	bodies map[string]map[string]any
}

func (f *fakeHyperspell) lastBody(path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[path]
}

func (f *fakeHyperspell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			var m map[string]any
			_ = json.Unmarshal(b, &m)
			f.mu.Lock()
			f.bodies[r.URL.Path] = m
			f.mu.Unlock()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/collections/list":
		io.WriteString(w, `{"items":[{"name":"notes","documents_count":2,"owner":"x"},{"name":"web"}],"next_cursor":null}`)
	case "/documents/list":
		if r.URL.Query().Get("collection") != "notes" {
			io.WriteString(w, `{"items":[]}`)
			return
		}
		io.WriteString(w, `{"items":[{"id":1,"type":"note","title":"First"},{"id":2,"type":"web","summary":"A page"}]}`)
	case "/documents/get/7":
		io.WriteString(w, `{"id":7,"type":"note","title":"Seven","data":{"k":"v"},"secret":"dropped"}`)
	case "/documents/get/42":
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Document not found"}`)
	case "/query":
		io.WriteString(w, `{"documents":[{"id":3,"type":"note","title":"Meeting"}]}`)
	case "/documents/add":
		io.WriteString(w, `{"id":99,"status":"pending"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Not Found"}`)
	}
}

func newTestServer(t *testing.T, useTools, useResources bool, collection string) (*server.MCPServer, *fakeHyperspell) {
	t.Helper()
	fake := &fakeHyperspell{bodies: map[string]map[string]any{}}
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	cfg := config.ServerConfig{
		APIKey:       "tok_test",
		UseTools:     useTools,
		UseResources: useResources,
		Collection:   collection,
		BaseURL:      ts.URL,
		Timeout:      5 * time.Second,
	}
	svc := adapter.New(adapter.NewClient(cfg, "hyperspell-mcp/test"), cfg)
	return NewServer(svc), fake
}

// rpc sends a JSON-RPC request and returns the decoded response.
func rpc(t *testing.T, s *server.MCPServer, method string, params any) map[string]any {
	t.Helper()
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	resp := s.HandleMessage(context.Background(), msg)
	b, err := json.Marshal(resp)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func result(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	require.Nil(t, resp["error"], "unexpected error: %v", resp["error"])
	r, ok := resp["result"].(map[string]any)
	require.True(t, ok, "missing result: %v", resp)
	return r
}

func listLen(t *testing.T, s *server.MCPServer, method, key string) int {
	t.Helper()
	items, _ := result(t, rpc(t, s, method, map[string]any{}))[key].([]any)
	return len(items)
}

// callTool returns the tool result text and its error flag.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) (string, bool) {
	t.Helper()
	r := result(t, rpc(t, s, "tools/call", map[string]any{"name": name, "arguments": args}))
	content, ok := r["content"].([]any)
	require.True(t, ok)
	require.Len(t, content, 1)
	text, _ := content[0].(map[string]any)["text"].(string)
	isErr, _ := r["isError"].(bool)
	return text, isErr
}

// readResource returns the text of the single content item.
func readResource(t *testing.T, s *server.MCPServer, uri string) (text, mime string) {
	t.Helper()
	r := result(t, rpc(t, s, "resources/read", map[string]any{"uri": uri}))
	contents, ok := r["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
	c := contents[0].(map[string]any)
	return c["text"].(string), c["mimeType"].(string)
}

func toolNames(s *server.MCPServer) []string {
	var names []string
	for name := range s.ListTools() {
		names = append(names, name)
	}
	return names
}

func TestRegistration(t *testing.T) {
	all := []string{"list_collections", "get_collection", "get_document", "search_hyperspell", "add_file", "add_memory"}

	t.Run("tools only", func(t *testing.T) {
		s, _ := newTestServer(t, true, false, "")
		assert.ElementsMatch(t, all, toolNames(s))

		resp := rpc(t, s, "resources/list", map[string]any{})
		assert.NotNil(t, resp["error"], "resources are not offered in tools mode")
	})

	t.Run("resources only", func(t *testing.T) {
		s, _ := newTestServer(t, false, true, "")
		assert.ElementsMatch(t, []string{"search_hyperspell", "add_file", "add_memory"}, toolNames(s))
		assert.Equal(t, 1, listLen(t, s, "resources/list", "resources"))
		assert.Equal(t, 2, listLen(t, s, "resources/templates/list", "resourceTemplates"))
	})

	t.Run("both", func(t *testing.T) {
		s, _ := newTestServer(t, true, true, "")
		assert.ElementsMatch(t, all, toolNames(s))
		assert.Equal(t, 1, listLen(t, s, "resources/list", "resources"))
		assert.Equal(t, 2, listLen(t, s, "resources/templates/list", "resourceTemplates"))
	})
}

func TestToolDefinitions(t *testing.T) {
	s, _ := newTestServer(t, true, false, "")
	tools := s.ListTools()

	assert.Equal(t, adapter.DescListCollections, tools["list_collections"].Tool.Description)
	assert.Equal(t, adapter.DescSearch, tools["search_hyperspell"].Tool.Description)
	assert.Contains(t, tools["get_document"].Tool.InputSchema.Required, "document_id")
	assert.Contains(t, tools["search_hyperspell"].Tool.InputSchema.Required, "query")
	assert.NotContains(t, tools["search_hyperspell"].Tool.InputSchema.Required, "collections")

	ro := tools["get_collection"].Tool.Annotations.ReadOnlyHint
	require.NotNil(t, ro)
	assert.True(t, *ro)
	ro = tools["add_memory"].Tool.Annotations.ReadOnlyHint
	require.NotNil(t, ro)
	assert.False(t, *ro)
}

func TestListCollectionsTool(t *testing.T) {
	s, _ := newTestServer(t, true, false, "")
	text, isErr := callTool(t, s, "list_collections", map[string]any{})
	require.False(t, isErr, text)
	assert.JSONEq(t, `[{"name":"notes","documents_count":2},{"name":"web","documents_count":0}]`, text)
}

func TestGetCollectionTool(t *testing.T) {
	s, _ := newTestServer(t, true, false, "")
	text, isErr := callTool(t, s, "get_collection", map[string]any{"collection_name": "notes"})
	require.False(t, isErr, text)
	assert.JSONEq(t, `[{"id":1,"type":"note","title":"First"},{"id":2,"type":"web","summary":"A page"}]`, text)

	text, isErr = callTool(t, s, "get_collection", map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, `"InvalidInputError"`)
}

func TestGetDocumentTool(t *testing.T) {
	s, _ := newTestServer(t, true, false, "")

	text, isErr := callTool(t, s, "get_document", map[string]any{"document_id": 7})
	require.False(t, isErr, text)
	assert.JSONEq(t, `{"id":7,"type":"note","title":"Seven","data":{"k":"v"}}`, text)

	t.Run("not found is reported", func(t *testing.T) {
		text, isErr := callTool(t, s, "get_document", map[string]any{"document_id": 42})
		require.True(t, isErr)

		var rec map[string]string
		require.NoError(t, json.Unmarshal([]byte(text), &rec))
		assert.Equal(t, "NotFoundError", rec["error"])
		assert.Contains(t, rec["message"], "42")
	})

	t.Run("non-integer id", func(t *testing.T) {
		text, isErr := callTool(t, s, "get_document", map[string]any{"document_id": 1.5})
		assert.True(t, isErr)
		assert.Contains(t, text, "InvalidInputError")
	})
}

func TestSearchTool(t *testing.T) {
	s, fake := newTestServer(t, true, false, "notes")

	text, isErr := callTool(t, s, "search_hyperspell", map[string]any{"query": "meeting"})
	require.False(t, isErr, text)
	assert.JSONEq(t, `[{"id":3,"type":"note","title":"Meeting"}]`, text)
	assert.Equal(t, map[string]any{"query": "meeting", "collections": []any{"notes"}}, fake.lastBody("/query"))

	_, isErr = callTool(t, s, "search_hyperspell", map[string]any{"query": "x", "collections": []any{"a", "b"}})
	require.False(t, isErr)
	assert.Equal(t, []any{"a", "b"}, fake.lastBody("/query")["collections"])
}

func TestAddTools(t *testing.T) {
	s, fake := newTestServer(t, true, false, "notes")

	text, isErr := callTool(t, s, "add_memory", map[string]any{"text": "hello"})
	require.False(t, isErr, text)
	assert.JSONEq(t, `{"id":99,"status":"pending"}`, text)
	assert.Equal(t, map[string]any{"text": "hello", "collection": "notes", "source": "mcp"}, fake.lastBody("/documents/add"))

	text, isErr = callTool(t, s, "add_file", map[string]any{"url": "https://example.com/a.pdf", "collection": "web"})
	require.False(t, isErr, text)
	assert.Equal(t, map[string]any{"url": "https://example.com/a.pdf", "collection": "web"}, fake.lastBody("/documents/add"))

	text, isErr = callTool(t, s, "add_memory", map[string]any{"text": "  "})
	assert.True(t, isErr)
	assert.Contains(t, text, "InvalidInputError")
}

func TestAddMemoryKeepsText(t *testing.T) {
	s, fake := newTestServer(t, true, false, "")

	text := "  indented line\nsecond line\n"
	out, isErr := callTool(t, s, "add_memory", map[string]any{"text": text, "title": " Notes "})
	require.False(t, isErr, out)

	body := fake.lastBody("/documents/add")
	assert.Equal(t, text, body["text"])
	assert.Equal(t, " Notes ", body["title"])
}

func TestResourceTemplates(t *testing.T) {
	s, _ := newTestServer(t, false, true, "")

	resp := rpc(t, s, "resources/templates/list", map[string]any{})
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "resources/templates/list: %v", resp)

	var uris []string
	for _, tmpl := range result["resourceTemplates"].([]any) {
		uris = append(uris, tmpl.(map[string]any)["uriTemplate"].(string))
	}
	assert.ElementsMatch(t, []string{collectionTemplate, documentTemplate}, uris)

	fromResource, mime := readResource(t, s, "document://7")
	assert.Equal(t, mimeJSON, mime)
	assert.Contains(t, fromResource, `"title": "Seven"`)
}

func TestResourcesMatchTools(t *testing.T) {
	s, _ := newTestServer(t, true, true, "")

	tests := []struct {
		uri  string
		tool string
		args map[string]any
	}{
		{"collection://", "list_collections", map[string]any{}},
		{"collection://notes", "get_collection", map[string]any{"collection_name": "notes"}},
		{"document://7", "get_document", map[string]any{"document_id": 7}},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			fromResource, mime := readResource(t, s, tt.uri)
			fromTool, isErr := callTool(t, s, tt.tool, tt.args)
			require.False(t, isErr, fromTool)
			assert.Equal(t, mimeJSON, mime)
			assert.Equal(t, fromTool, fromResource)
		})
	}
}

func TestResourceError(t *testing.T) {
	s, _ := newTestServer(t, false, true, "")

	resp := rpc(t, s, "resources/read", map[string]any{"uri": "document://42"})
	errObj, ok := resp["error"].(map[string]any)
	require.True(t, ok, "expected an error response: %v", resp)
	assert.Contains(t, errObj["message"], "42")
}

func TestParseResourceURI(t *testing.T) {
	args, err := parseResourceURI(collectionTemplate, "collection://my%20notes")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"collection_name": "my notes"}, args)

	args, err = parseResourceURI(collectionsURI, "collection://")
	require.NoError(t, err)
	assert.Empty(t, args)

	for _, bad := range []string{"document://", "collection://x", "document://1/2"} {
		_, err := parseResourceURI(documentTemplate, bad)
		assert.ErrorIs(t, err, ErrInvalidURI, bad)
	}
}

func TestDocumentID(t *testing.T) {
	good := []any{float64(12), json.Number("12"), "12", " 12 "}
	for _, v := range good {
		id, err := documentID(map[string]any{"document_id": v})
		require.NoError(t, err, v)
		assert.Equal(t, 12, id)
	}

	bad := []any{nil, float64(0), float64(-1), 2.5, "abc", true, json.Number("1.5")}
	for _, v := range bad {
		_, err := documentID(map[string]any{"document_id": v})
		assert.ErrorIs(t, err, adapter.ErrInvalidInput, "%v", v)
	}
}

func TestArgStrings(t *testing.T) {
	assert.Nil(t, argStrings(map[string]any{}, "c"))
	assert.Equal(t, []string{"a"}, argStrings(map[string]any{"c": "a"}, "c"))
	assert.Equal(t, []string{"a", "b"}, argStrings(map[string]any{"c": []any{"a", 3, "", "b"}}, "c"))
	assert.Nil(t, argStrings(map[string]any{"c": []any{}}, "c"))
}
