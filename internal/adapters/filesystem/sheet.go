package filesystem

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nikki/internal/domain"
	"nikki/internal/ports"
)

// Sheet implements ports.Sheet on a local CSV file. Rows keep their own
// width; the file is created on first write.
type Sheet struct {
	path string
}

// Ensure Sheet implements Sheet and Rewriter
var (
	_ ports.Sheet    = (*Sheet)(nil)
	_ ports.Rewriter = (*Sheet)(nil)
)

// NewSheet creates a CSV-backed sheet at path
func NewSheet(path string) *Sheet {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return &Sheet{path: path}
}

// Path returns the CSV file path
func (s *Sheet) Path() string {
	return s.path
}

// Rows reads every record of the file. A missing file has no rows.
func (s *Sheet) Rows(_ context.Context) ([]domain.Row, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var rows []domain.Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// AppendRow appends one record to the end of the file
func (s *Sheet) AppendRow(_ context.Context, row domain.Row) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open sheet: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(encode([]domain.Row{row})); err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return f.Sync()
}

// Clear truncates the file
func (s *Sheet) Clear(ctx context.Context) error {
	return s.ReplaceAll(ctx, nil)
}

// InsertRow rewrites the file with row placed at the 1-based position
func (s *Sheet) InsertRow(ctx context.Context, row domain.Row, position int) error {
	if position < 1 {
		return fmt.Errorf("invalid row position %d", position)
	}
	rows, err := s.Rows(ctx)
	if err != nil {
		return err
	}

	idx := position - 1
	if idx > len(rows) {
		idx = len(rows)
	}
	out := make([]domain.Row, 0, len(rows)+1)
	out = append(out, rows[:idx]...)
	out = append(out, row)
	out = append(out, rows[idx:]...)
	return s.ReplaceAll(ctx, out)
}

// ReplaceAll writes rows to a temporary file and renames it over the sheet,
// so readers see either the old or the new content.
func (s *Sheet) ReplaceAll(_ context.Context, rows []domain.Row) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encode(rows)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace sheet: %w", err)
	}
	return nil
}

func encode(rows []domain.Row) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// Writes to a bytes.Buffer cannot fail.
	for _, r := range rows {
		_ = w.Write(r)
	}
	w.Flush()
	return buf.Bytes()
}
