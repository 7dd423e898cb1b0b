// api.go implements the endpoint calls used by the adapter.
//
// Each method is one round trip. List endpoints return the first page only;
// the cursor is surfaced but never followed.

package hyperspell

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CollectionList is the body of GET /collections/list.
type CollectionList struct {
	Items      []Object `json:"items"`
	NextCursor *string  `json:"next_cursor,omitempty"`
}

// DocumentList is the body of GET /documents/list.
type DocumentList struct {
	Items      []Object `json:"items"`
	NextCursor *string  `json:"next_cursor,omitempty"`
}

// SearchResult is the body of POST /query.
type SearchResult struct {
	Documents []Object `json:"documents"`
}

// AddDocumentParams describes a document to ingest. Exactly one of Text or
// URL must be set; empty optional fields are omitted from the request.
type AddDocumentParams struct {
	Text       string `json:"text,omitempty"`
	URL        string `json:"url,omitempty"`
	Collection string `json:"collection,omitempty"`
	Title      string `json:"title,omitempty"`
	Source     string `json:"source,omitempty"`
}

// SearchParams describes a query. A nil Collections searches every collection.
type SearchParams struct {
	Query       string   `json:"query"`
	Collections []string `json:"collections,omitempty"`
}

// ListCollections returns the collections visible to the token.
func (c *Client) ListCollections(ctx context.Context) (*CollectionList, error) {
	var out CollectionList
	if err := c.do(ctx, http.MethodGet, "/collections/list", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocuments returns the documents in a collection.
func (c *Client) ListDocuments(ctx context.Context, collection string) (*DocumentList, error) {
	q := url.Values{}
	if collection != "" {
		q.Set("collection", collection)
	}
	var out DocumentList
	if err := c.do(ctx, http.MethodGet, "/documents/list", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument fetches a single document by id.
func (c *Client) GetDocument(ctx context.Context, id int) (Object, error) {
	var out Object
	if err := c.do(ctx, http.MethodGet, "/documents/get/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddDocument submits text or a URL for ingestion and returns its status.
// Processing continues server-side after the call returns.
func (c *Client) AddDocument(ctx context.Context, p AddDocumentParams) (Object, error) {
	if (p.Text == "") == (p.URL == "") {
		return nil, fmt.Errorf("%w: exactly one of text or url is required", ErrInvalidParams)
	}
	var out Object
	if err := c.do(ctx, http.MethodPost, "/documents/add", nil, p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search queries documents across the given collections.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	if p.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidParams)
	}
	var out SearchResult
	if err := c.do(ctx, http.MethodPost, "/query", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
