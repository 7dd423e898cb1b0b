package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hyperspell/hyperspell-mcp/internal/record"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func TestCollections(t *testing.T) {
	var buf bytes.Buffer
	err := Collections(&buf, []record.Collection{
		{Name: "notes", DocumentsCount: 1234},
		{Name: "a-much-longer-name", DocumentsCount: 0},
	})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "1,234")
	assert.Equal(t, strings.Index(lines[0], "DOCUMENTS")+len("DOCUMENTS"), len(lines[1]))

	buf.Reset()
	assert.NoError(t, Collections(&buf, nil))
	assert.Equal(t, "No collections.\n", buf.String())
}

func TestDocuments(t *testing.T) {
	fixNow(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	err := Documents(&buf, []record.Document{
		{ID: 7, Type: "note", Title: ptr("Meeting"), CreatedAt: ptr("2026-03-07T12:00:00Z")},
		{ID: 12345, Type: "web_page", Title: ptr(strings.Repeat("x", 80))},
		{ID: 8, Type: "note"},
	})
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Meeting")
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, strings.Repeat("x", 57)+"...")
	assert.Contains(t, out, "(untitled note)")

	buf.Reset()
	assert.NoError(t, Documents(&buf, []record.Document{}))
	assert.Equal(t, "No documents.\n", buf.String())
}

func TestDocument(t *testing.T) {
	fixNow(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	md := Document(record.Document{
		ID:         42,
		Type:       "note",
		Title:      ptr("Plans"),
		Summary:    ptr("Quarterly plans."),
		Collection: ptr("notes"),
		CreatedAt:  ptr("2026-03-10T10:00:00Z"),
		Data:       map[string]any{"b": 2, "a": "one"},
	})

	assert.True(t, strings.HasPrefix(md, "# Plans\n"))
	assert.Contains(t, md, "- **ID:** 42")
	assert.Contains(t, md, "- **Collection:** notes")
	assert.Contains(t, md, "2 hours ago")
	assert.Contains(t, md, "## Summary\n\nQuarterly plans.")
	assert.Less(t, strings.Index(md, "**a:**"), strings.Index(md, "**b:**"))
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Status(&buf, record.DocumentStatus{ID: 9, Status: ptr("pending"), Collection: ptr("notes")}))
	assert.Equal(t, "9  pending  collection=notes\n", buf.String())

	buf.Reset()
	assert.NoError(t, Status(&buf, record.DocumentStatus{ID: 10}))
	assert.Equal(t, "10  submitted\n", buf.String())
}

func TestAge(t *testing.T) {
	fixNow(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "-", Age(""))
	assert.Equal(t, "yesterday-ish", Age("yesterday-ish"))
	assert.Equal(t, "1 minute ago", Age("2026-03-10T11:59:00Z"))
}
