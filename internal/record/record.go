// Package record defines the plain output records returned to MCP clients
// and the projection from raw API objects onto them.
//
// Every record declares its field set explicitly. Mapping copies only those
// keys from the raw object; anything else the API sends is dropped.
package record

import (
	"errors"
	"fmt"

	"github.com/hyperspell/hyperspell-mcp/internal/hyperspell"
)

// ErrMapping indicates a raw object that cannot be turned into a record:
// a required field is missing or a field has the wrong JSON type.
var ErrMapping = errors.New("mapping error")

// Collection is a named grouping of documents.
type Collection struct {
	Name           string `json:"name"`
	DocumentsCount int    `json:"documents_count"`
}

// CollectionFields is the allow-list for Collection.
var CollectionFields = []string{"name", "documents_count"}

// Document is one indexed item. Search results, collection listings and
// single fetches populate different subsets of the optional fields.
type Document struct {
	ID         int            `json:"id"`
	Title      *string        `json:"title,omitempty"`
	Type       string         `json:"type"`
	Summary    *string        `json:"summary,omitempty"`
	Source     *string        `json:"source,omitempty"`
	ResourceID *string        `json:"resource_id,omitempty"`
	CreatedAt  *string        `json:"created_at,omitempty"`
	Collection *string        `json:"collection,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// DocumentFields is the allow-list for Document.
var DocumentFields = []string{
	"id", "title", "type", "summary", "source",
	"resource_id", "created_at", "collection", "data",
}

// DocumentStatus describes a just-submitted document that may still be
// processing.
type DocumentStatus struct {
	ID         int     `json:"id"`
	Status     *string `json:"status,omitempty"`
	Title      *string `json:"title,omitempty"`
	Type       *string `json:"type,omitempty"`
	Source     *string `json:"source,omitempty"`
	ResourceID *string `json:"resource_id,omitempty"`
	CreatedAt  *string `json:"created_at,omitempty"`
	Collection *string `json:"collection,omitempty"`
}

// DocumentStatusFields is the allow-list for DocumentStatus.
var DocumentStatusFields = []string{
	"id", "status", "title", "type", "source",
	"resource_id", "created_at", "collection",
}

// Error is the structured failure reported in place of a result.
type Error struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
}

// Project returns a copy of raw holding only the keys listed in fields.
func Project(raw hyperspell.Object, fields []string) hyperspell.Object {
	out := make(hyperspell.Object, len(fields))
	for _, f := range fields {
		if v, ok := raw[f]; ok {
			out[f] = v
		}
	}
	return out
}

// MapCollection projects raw onto a Collection.
func MapCollection(raw hyperspell.Object) (Collection, error) {
	r := newReader("Collection", Project(raw, CollectionFields))
	c := Collection{
		Name:           r.requiredString("name"),
		DocumentsCount: r.optionalInt("documents_count", 0),
	}
	return c, r.err
}

// MapDocument projects raw onto a Document.
func MapDocument(raw hyperspell.Object) (Document, error) {
	r := newReader("Document", Project(raw, DocumentFields))
	d := Document{
		ID:         r.requiredInt("id"),
		Title:      r.optionalString("title"),
		Type:       r.requiredString("type"),
		Summary:    r.optionalString("summary"),
		Source:     r.optionalString("source"),
		ResourceID: r.optionalString("resource_id"),
		CreatedAt:  r.optionalString("created_at"),
		Collection: r.optionalString("collection"),
		Data:       r.optionalMap("data"),
	}
	return d, r.err
}

// MapDocumentStatus projects raw onto a DocumentStatus.
func MapDocumentStatus(raw hyperspell.Object) (DocumentStatus, error) {
	r := newReader("DocumentStatus", Project(raw, DocumentStatusFields))
	s := DocumentStatus{
		ID:         r.requiredInt("id"),
		Status:     r.optionalString("status"),
		Title:      r.optionalString("title"),
		Type:       r.optionalString("type"),
		Source:     r.optionalString("source"),
		ResourceID: r.optionalString("resource_id"),
		CreatedAt:  r.optionalString("created_at"),
		Collection: r.optionalString("collection"),
	}
	return s, r.err
}

// MapAll maps each raw object with fn, preserving order. The result always
// has the same length as raws; the first failing element aborts the mapping.
func MapAll[T any](raws []hyperspell.Object, fn func(hyperspell.Object) (T, error)) ([]T, error) {
	out := make([]T, len(raws))
	for i, raw := range raws {
		v, err := fn(raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
