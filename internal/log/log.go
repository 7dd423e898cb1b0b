// Package log provides the audit log for hyperspell-mcp operations.
// Entries are stored in ~/.hyperspell/log/hyperspell-log.db and record every
// MCP tool call, resource read and CLI command that reaches the API.
//
// # Fluent API
//
//	log.Event("mcp:get_document", "read").
//		Target("42").
//		RequestID(id).
//		Write(err)
//
//	log.Event("cli:search", "search").
//		Detail("query", query).
//		Detail("count", len(docs)).
//		Write(err)
//
// The source is "mcp:{tool}" for tools, "resource:{uri}" for resource reads
// and "cli:{command}" for commands. The API token is never written; entries
// carry a short hash of it so activity can be grouped per account.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source    string // e.g. "mcp:search_hyperspell", "cli:collections"
	Action    string // verb: list, read, search, add
	Target    string // collection name, document id or URL the operation addressed
	RequestID string // X-Request-Id sent to the API

	Start int64 // unix milliseconds when Event() was called
	End   int64 // unix milliseconds when Write() was called

	Success bool
	Kind    string // failure kind, e.g. "NotFoundError"
	Error   string
	Detail  map[string]any
}

// Duration returns how long the operation took.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.End-e.Start) * time.Millisecond
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Target sets what the operation addressed.
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// RequestID sets the request id sent to the API, so an entry can be matched
// against server-side logs.
func (b *Builder) RequestID(id string) *Builder {
	b.entry.RequestID = id
	return b
}

// Kind sets the failure kind. It is only stored for failed entries.
func (b *Builder) Kind(kind string) *Builder {
	b.entry.Kind = kind
	return b
}

// Detail adds a key-value pair to the entry's detail map.
// Can be called multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the entry, deriving success from err.
//
//	docs, err := svc.Search(ctx, q, nil)
//	log.Event("cli:search", "search").Detail("query", q).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	} else {
		b.entry.Kind = ""
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may ignore them; logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetAccount sets the account identifier for subsequent entries from the API
// token. Only a hash of the token is kept.
func SetAccount(token string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.account = hash(token)
	}
}

// Log writes an entry. Safe to call if the logger is not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
