// Package format renders records for terminal display.
//
// Listings are aligned text columns. Single documents are rendered as
// markdown so the caller can pass them through glamour on a terminal.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hyperspell/hyperspell-mcp/internal/record"
)

// maxTitle truncates long titles in listings.
const maxTitle = 60

// now is replaced in tests.
var now = time.Now

// Collections prints collections with their document counts.
func Collections(w io.Writer, cols []record.Collection) error {
	if len(cols) == 0 {
		fmt.Fprintln(w, "No collections.")
		return nil
	}

	maxName := len("NAME")
	for _, c := range cols {
		maxName = max(maxName, len(c.Name))
	}

	fmt.Fprintf(w, "%-*s  %9s\n", maxName, "NAME", "DOCUMENTS")
	for _, c := range cols {
		fmt.Fprintf(w, "%-*s  %9s\n", maxName, c.Name, humanize.Comma(int64(c.DocumentsCount)))
	}
	return nil
}

// Documents prints one line per document: id, type, age and title.
func Documents(w io.Writer, docs []record.Document) error {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents.")
		return nil
	}

	maxType := len("TYPE")
	for _, d := range docs {
		maxType = max(maxType, len(d.Type))
	}

	fmt.Fprintf(w, "%8s  %-*s  %-14s  %s\n", "ID", maxType, "TYPE", "CREATED", "TITLE")
	for _, d := range docs {
		fmt.Fprintf(w, "%8d  %-*s  %-14s  %s\n", d.ID, maxType, d.Type, Age(deref(d.CreatedAt)), truncate(title(d), maxTitle))
	}
	return nil
}

// Document returns d as a markdown page.
func Document(d record.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title(d))

	fmt.Fprintf(&b, "- **ID:** %d\n", d.ID)
	fmt.Fprintf(&b, "- **Type:** %s\n", d.Type)
	if d.Collection != nil {
		fmt.Fprintf(&b, "- **Collection:** %s\n", *d.Collection)
	}
	if d.Source != nil {
		fmt.Fprintf(&b, "- **Source:** %s\n", *d.Source)
	}
	if d.ResourceID != nil {
		fmt.Fprintf(&b, "- **Resource:** %s\n", *d.ResourceID)
	}
	if d.CreatedAt != nil {
		fmt.Fprintf(&b, "- **Created:** %s (%s)\n", *d.CreatedAt, Age(*d.CreatedAt))
	}

	if d.Summary != nil && *d.Summary != "" {
		fmt.Fprintf(&b, "\n## Summary\n\n%s\n", *d.Summary)
	}

	if len(d.Data) > 0 {
		keys := make([]string, 0, len(d.Data))
		for k := range d.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\n## Data\n\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s:** %v\n", k, d.Data[k])
		}
	}
	return b.String()
}

// Status prints the result of submitting a document.
func Status(w io.Writer, s record.DocumentStatus) error {
	status := "submitted"
	if s.Status != nil {
		status = *s.Status
	}
	fmt.Fprintf(w, "%d  %s", s.ID, status)
	if s.Collection != nil {
		fmt.Fprintf(w, "  collection=%s", *s.Collection)
	}
	if s.Title != nil {
		fmt.Fprintf(w, "  %q", *s.Title)
	}
	fmt.Fprintln(w)
	return nil
}

// Age renders an RFC 3339 timestamp relative to now ("3 days ago").
// Unparseable input is returned unchanged; empty input renders as "-".
func Age(ts string) string {
	if ts == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return humanize.RelTime(t, now(), "ago", "from now")
}

func title(d record.Document) string {
	if d.Title != nil && *d.Title != "" {
		return *d.Title
	}
	return fmt.Sprintf("(untitled %s)", d.Type)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
