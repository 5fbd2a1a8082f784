package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"nikki/internal/domain"
	"nikki/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Sheet implements ports.Sheet as an ordered table of JSON-encoded rows.
// One database can hold several sheets, keyed by name.
type Sheet struct {
	db     *sql.DB
	name   string
	dbPath string
}

// Ensure Sheet implements Sheet, Rewriter and Closer
var (
	_ ports.Sheet    = (*Sheet)(nil)
	_ ports.Rewriter = (*Sheet)(nil)
	_ ports.Closer   = (*Sheet)(nil)
)

// Open opens (creating if needed) the database at dbPath and binds the sheet name
func Open(dbPath, name string) (*Sheet, error) {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sheet_rows (
			sheet TEXT NOT NULL,
			position INTEGER NOT NULL,
			cells TEXT NOT NULL,
			PRIMARY KEY (sheet, position)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', '` + schemaVersion + `');
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &Sheet{db: db, name: name, dbPath: dbPath}, nil
}

// Close closes the database connection
func (s *Sheet) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Sheet) Path() string {
	return s.dbPath
}

// Rows returns every row in position order
func (s *Sheet) Rows(ctx context.Context) ([]domain.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY position
	`, s.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, err
		}
		r, err := decodeRow(cells)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AppendRow adds a row after the last position
func (s *Sheet) AppendRow(ctx context.Context, row domain.Row) error {
	cells, err := encodeRow(row)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sheet_rows (sheet, position, cells)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM sheet_rows WHERE sheet = ?), ?)
	`, s.name, s.name, cells)
	return err
}

// Clear removes every row of the sheet
func (s *Sheet) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sheet_rows WHERE sheet = ?`, s.name)
	return err
}

// InsertRow shifts rows at or after position down by one and stores row there
func (s *Sheet) InsertRow(ctx context.Context, row domain.Row, position int) error {
	if position < 1 {
		return fmt.Errorf("invalid row position %d", position)
	}
	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.shiftDown(position); err != nil {
		return err
	}
	if err := tx.insert(position, row); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceAll swaps the sheet's content for rows in one transaction
func (s *Sheet) ReplaceAll(ctx context.Context, rows []domain.Row) error {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.clear(); err != nil {
		return err
	}
	for i, r := range rows {
		if err := tx.insert(i+1, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func encodeRow(r domain.Row) (string, error) {
	if r == nil {
		r = domain.Row{}
	}
	b, err := json.Marshal([]string(r))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeRow(cells string) (domain.Row, error) {
	var r []string
	if err := json.Unmarshal([]byte(cells), &r); err != nil {
		return nil, fmt.Errorf("corrupt row %q: %w", cells, err)
	}
	return r, nil
}
