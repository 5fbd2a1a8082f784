package ports

import (
	"context"

	"nikki/internal/domain"
)

// Sheet is the tabular store backing the diary. Row positions are 1-based and
// row 1 holds the header.
type Sheet interface {
	// Rows fetches every row as raw text, including the header row
	Rows(ctx context.Context) ([]domain.Row, error)

	// AppendRow adds a row after the last one
	AppendRow(ctx context.Context, row domain.Row) error

	// Clear removes every row
	Clear(ctx context.Context) error

	// InsertRow inserts a row at position, shifting existing rows down
	InsertRow(ctx context.Context, row domain.Row, position int) error
}

// Rewriter is implemented by sheets that can replace their whole content in
// a single call. Delete prefers it over clear-then-append.
type Rewriter interface {
	ReplaceAll(ctx context.Context, rows []domain.Row) error
}

// Closer is implemented by sheets holding resources that must be released
type Closer interface {
	Close() error
}
