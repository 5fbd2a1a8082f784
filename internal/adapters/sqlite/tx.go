package sqlite

import (
	"context"
	"database/sql"

	"nikki/internal/domain"
)

// sheetTx groups row writes of one sheet into a transaction
type sheetTx struct {
	tx   *sql.Tx
	ctx  context.Context
	name string
}

func (s *Sheet) beginTx(ctx context.Context) (*sheetTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sheetTx{tx: tx, ctx: ctx, name: s.name}, nil
}

// shiftDown moves rows at or after position one place down. Positions are
// negated first so the primary key never collides mid-update.
func (t *sheetTx) shiftDown(position int) error {
	if _, err := t.tx.ExecContext(t.ctx, `
		UPDATE sheet_rows SET position = -(position + 1)
		WHERE sheet = ? AND position >= ?
	`, t.name, position); err != nil {
		return err
	}
	_, err := t.tx.ExecContext(t.ctx, `
		UPDATE sheet_rows SET position = -position
		WHERE sheet = ? AND position < 0
	`, t.name)
	return err
}

func (t *sheetTx) insert(position int, row domain.Row) error {
	cells, err := encodeRow(row)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(t.ctx, `
		INSERT INTO sheet_rows (sheet, position, cells) VALUES (?, ?, ?)
	`, t.name, position, cells)
	return err
}

func (t *sheetTx) clear() error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM sheet_rows WHERE sheet = ?`, t.name)
	return err
}

// Commit commits the transaction
func (t *sheetTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. It is a no-op after Commit.
func (t *sheetTx) Rollback() error {
	return t.tx.Rollback()
}
