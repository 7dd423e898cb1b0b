// log_storage.go persists audit entries in SQLite.
//
// Errors during logging are reported on stderr and otherwise ignored; an API
// call succeeds even if it cannot be recorded.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	account string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, account, source, action, target, request_id,
		                 success, kind, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.account, e.Source, e.Action,
		nilIfEmpty(e.Target), nilIfEmpty(e.RequestID),
		success, nilIfEmpty(e.Kind), nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "hyperspell-mcp: audit log write failed: %v\n", err)
	}
}

// dbPathFunc returns the database path. Tests override it.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hyperspell", "log", "hyperspell-log.db")
	}
	return filepath.Join(home, ".hyperspell", "log", "hyperspell-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash returns a 64-bit BLAKE2b digest of s as 16 hex characters.
func hash(s string) string {
	h, err := blake2b.New(8, nil)
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			start      INTEGER NOT NULL,
			end        INTEGER NOT NULL,
			account    TEXT NOT NULL,
			source     TEXT NOT NULL,
			action     TEXT NOT NULL,
			target     TEXT,
			request_id TEXT,
			success    INTEGER NOT NULL,
			kind       TEXT,
			error      TEXT,
			detail     TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_account ON log(account);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
	`)
	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
