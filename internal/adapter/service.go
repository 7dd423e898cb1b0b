// Package adapter implements the operations exposed over MCP and the CLI.
//
// Each operation is one round trip: call the Hyperspell API, project the
// response onto output records, return them. Operations do not know which
// surface invoked them.
package adapter

import (
	"context"
	"fmt"

	"github.com/hyperspell/hyperspell-mcp/internal/config"
	"github.com/hyperspell/hyperspell-mcp/internal/hyperspell"
	"github.com/hyperspell/hyperspell-mcp/internal/record"
)

// MemorySource tags documents created through Add Memory.
const MemorySource = "mcp"

// Operation documentation, shared verbatim by tool and resource descriptions
// and CLI help.
const (
	DescListCollections = "Get a list of all collections on Hyperspell"
	DescGetCollection   = "Get a list of all documents in a collection"
	DescGetDocument     = "Get a document from a collection"
	DescSearch          = "Search Hyperspell for documents and data"
	DescAddFile         = "Add a file or web page to Hyperspell by URL"
	DescAddMemory       = "Add a memory (a piece of text) to Hyperspell"
)

// API is the part of the Hyperspell client the operations use.
type API interface {
	ListCollections(ctx context.Context) (*hyperspell.CollectionList, error)
	ListDocuments(ctx context.Context, collection string) (*hyperspell.DocumentList, error)
	GetDocument(ctx context.Context, id int) (hyperspell.Object, error)
	AddDocument(ctx context.Context, p hyperspell.AddDocumentParams) (hyperspell.Object, error)
	Search(ctx context.Context, p hyperspell.SearchParams) (*hyperspell.SearchResult, error)
}

var _ API = (*hyperspell.Client)(nil)

// Service runs operations against the API with a fixed configuration.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	api API
	cfg config.ServerConfig
}

// New creates a Service.
func New(api API, cfg config.ServerConfig) *Service {
	return &Service{api: api, cfg: cfg}
}

// NewClient builds the Hyperspell client described by cfg.
func NewClient(cfg config.ServerConfig, userAgent string) *hyperspell.Client {
	return hyperspell.New(cfg.APIKey,
		hyperspell.WithBaseURL(cfg.BaseURL),
		hyperspell.WithTimeout(cfg.Timeout),
		hyperspell.WithUserAgent(userAgent),
	)
}

// Config returns the configuration the service was created with.
func (s *Service) Config() config.ServerConfig { return s.cfg }

// ListCollections returns every collection visible to the token.
func (s *Service) ListCollections(ctx context.Context) ([]record.Collection, error) {
	r, err := s.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	out, err := record.MapAll(r.Items, record.MapCollection)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return out, nil
}

// GetCollection returns the documents in the named collection.
func (s *Service) GetCollection(ctx context.Context, name string) ([]record.Document, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", ErrInvalidInput)
	}
	r, err := s.api.ListDocuments(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", name, err)
	}
	out, err := record.MapAll(r.Items, record.MapDocument)
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", name, err)
	}
	return out, nil
}

// GetDocument fetches one document. Failures are returned, never folded
// into the result.
func (s *Service) GetDocument(ctx context.Context, id int) (record.Document, error) {
	if id <= 0 {
		return record.Document{}, fmt.Errorf("%w: document id must be a positive integer, got %d", ErrInvalidInput, id)
	}
	raw, err := s.api.GetDocument(ctx, id)
	if err != nil {
		return record.Document{}, fmt.Errorf("get document %d: %w", id, err)
	}
	doc, err := record.MapDocument(raw)
	if err != nil {
		return record.Document{}, fmt.Errorf("get document %d: %w", id, err)
	}
	return doc, nil
}

// Search queries Hyperspell. With no collections given, the configured
// default collection is searched, or every collection if none is configured.
func (s *Service) Search(ctx context.Context, query string, collections []string) ([]record.Document, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if len(collections) == 0 && s.cfg.Collection != "" {
		collections = []string{s.cfg.Collection}
	}
	r, err := s.api.Search(ctx, hyperspell.SearchParams{Query: query, Collections: collections})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	out, err := record.MapAll(r.Documents, record.MapDocument)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return out, nil
}

// AddFile submits a URL for ingestion.
func (s *Service) AddFile(ctx context.Context, url, collection string) (record.DocumentStatus, error) {
	if url == "" {
		return record.DocumentStatus{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	return s.add(ctx, "add file", hyperspell.AddDocumentParams{
		URL:        url,
		Collection: s.collection(collection),
	})
}

// AddMemory submits a piece of text for ingestion. title may be empty.
func (s *Service) AddMemory(ctx context.Context, text, title, collection string) (record.DocumentStatus, error) {
	if text == "" {
		return record.DocumentStatus{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	return s.add(ctx, "add memory", hyperspell.AddDocumentParams{
		Text:       text,
		Title:      title,
		Collection: s.collection(collection),
		Source:     MemorySource,
	})
}

func (s *Service) add(ctx context.Context, op string, p hyperspell.AddDocumentParams) (record.DocumentStatus, error) {
	raw, err := s.api.AddDocument(ctx, p)
	if err != nil {
		return record.DocumentStatus{}, fmt.Errorf("%s: %w", op, err)
	}
	st, err := record.MapDocumentStatus(raw)
	if err != nil {
		return record.DocumentStatus{}, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// collection returns the caller's collection, falling back to the default.
func (s *Service) collection(requested string) string {
	if requested != "" {
		return requested
	}
	return s.cfg.Collection
}
