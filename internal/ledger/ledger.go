// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps an optional SQLite history of conversions: which PDF
// was converted, where the Markdown went, how large it was, and whether it
// failed. The history can be listed or exported as YAML.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2md/pkg/types"
)

const defaultRecentLimit = 20

// Ledger manages the conversion history database.
type Ledger struct {
	db *sql.DB
}

// NewRunID returns an identifier grouping the conversions of one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens or creates the ledger database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			source TEXT NOT NULL,
			output TEXT NOT NULL,
			backend TEXT,
			chars INTEGER,
			sha256 TEXT,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a conversion to the history. A zero ConvertedAt is set to
// the current time.
func (l *Ledger) Record(ctx context.Context, c types.Conversion) error {
	if c.ConvertedAt.IsZero() {
		c.ConvertedAt = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO conversions (run_id, source, output, backend, chars, sha256, status, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.RunID, c.Source, c.Output, string(c.Backend), c.Chars, c.SHA256,
		string(c.Status), c.Error, c.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", c.Source, err)
	}
	return nil
}

// Recent returns up to limit conversions, newest first. A non-positive limit
// means 20.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]types.Conversion, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return l.query(ctx,
		`SELECT run_id, source, output, backend, chars, sha256, status, error, converted_at
		 FROM conversions ORDER BY rowid DESC LIMIT ?`, limit)
}

// ForSource returns every recorded conversion of source, oldest first.
func (l *Ledger) ForSource(ctx context.Context, source string) ([]types.Conversion, error) {
	return l.query(ctx,
		`SELECT run_id, source, output, backend, chars, sha256, status, error, converted_at
		 FROM conversions WHERE source = ? ORDER BY rowid`, source)
}

func (l *Ledger) query(ctx context.Context, q string, args ...any) ([]types.Conversion, error) {
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var out []types.Conversion
	for rows.Next() {
		var (
			c                   types.Conversion
			backend, status, ts string
			sha, errText        sql.NullString
			chars               sql.NullInt64
		)
		if err := rows.Scan(&c.RunID, &c.Source, &c.Output, &backend, &chars, &sha, &status, &errText, &ts); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		c.Backend = types.ExtractionBackend(backend)
		c.Status = types.ConversionStatus(status)
		c.Chars = int(chars.Int64)
		c.SHA256 = sha.String
		c.Error = errText.String
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			c.ConvertedAt = t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ExportYAML writes the whole history, oldest first, as a YAML list.
func (l *Ledger) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := l.query(ctx,
		`SELECT run_id, source, output, backend, chars, sha256, status, error, converted_at
		 FROM conversions ORDER BY rowid`)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []types.Conversion{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
