package application

import (
	"context"
	"fmt"

	"nikki/internal/domain"
	"nikki/internal/logger"
	"nikki/internal/ports"
)

// Diary mediates between the diary schema and a tabular sheet. It holds no
// state besides the sheet handle, so every read reflects the sheet as it is.
//
// No locking is done: two sessions writing at once are last-append-wins.
type Diary struct {
	sheet  ports.Sheet
	schema domain.Schema
}

// NewDiary creates a diary over sheet using schema
func NewDiary(sheet ports.Sheet, schema domain.Schema) *Diary {
	return &Diary{sheet: sheet, schema: schema}
}

// Schema returns the active schema
func (d *Diary) Schema() domain.Schema {
	return d.schema
}

// EnsureHeader writes the schema's field names as row 1 when the sheet has no
// header. An existing header is never touched, even if it differs from the
// schema. Reports whether a header was written.
func (d *Diary) EnsureHeader(ctx context.Context) (bool, error) {
	rows, err := d.sheet.Rows(ctx)
	if err != nil {
		return false, ReadError("read header", err)
	}
	if len(rows) > 0 && !rows[0].IsBlank() {
		return false, nil
	}

	if err := d.sheet.InsertRow(ctx, d.schema.Header(), 1); err != nil {
		return false, WriteError("write header", err)
	}
	logger.Info("wrote header row", "schema", d.schema.Version, "columns", len(d.schema.Fields))
	return true, nil
}

// Append adds one row, matched positionally to the schema. Length is not
// checked here.
func (d *Diary) Append(ctx context.Context, values domain.Row) error {
	if err := d.sheet.AppendRow(ctx, values); err != nil {
		return WriteError("append row", err)
	}
	logger.Debug("appended row", "key", firstCell(values))
	return nil
}

// ReadAll fetches the sheet as a table. Blank rows are dropped.
func (d *Diary) ReadAll(ctx context.Context) (domain.Table, error) {
	rows, err := d.sheet.Rows(ctx)
	if err != nil {
		return domain.Table{}, ReadError("read rows", err)
	}
	return domain.NewTable(rows, d.schema), nil
}

// Records reads and coerces the sheet. Malformed cells are logged, never
// returned as errors.
func (d *Diary) Records(ctx context.Context) (domain.RecordSet, error) {
	table, err := d.ReadAll(ctx)
	if err != nil {
		return domain.RecordSet{}, err
	}
	set, warnings := d.schema.Coerce(table)
	for _, w := range warnings {
		logger.Debug("coercion", "warning", w.String())
	}
	return set, nil
}

// DeleteByKey removes every row whose key cell names the same day as key and
// returns how many were removed. Zero means nothing matched.
//
// When the sheet implements ports.Rewriter the surviving rows are written in
// one call. Otherwise the sheet is cleared, the header rewritten and the
// survivors appended one at a time. That fallback is not atomic: if it fails
// part way the sheet is left with only the rows written so far, and the
// returned *RewriteError carries the rows that still need storing.
func (d *Diary) DeleteByKey(ctx context.Context, key string) (int, error) {
	raw, err := d.sheet.Rows(ctx)
	if err != nil {
		return 0, ReadError("read rows", err)
	}
	table := domain.NewTable(raw, d.schema)

	col := table.Column(d.schema.Key().Name)
	if col < 0 {
		col = 0
	}

	// Survivors are rewritten as stored, not as fitted to the header.
	stored := domain.DataRows(raw)
	kept := make([]domain.Row, 0, len(stored))
	for _, r := range stored {
		if col < len(r) && domain.SameKey(r[col], key) {
			continue
		}
		kept = append(kept, r)
	}

	header := d.schema.Header()
	if len(raw) > 0 && !raw[0].IsBlank() {
		header = raw[0]
	}

	removed := len(stored) - len(kept)
	if removed == 0 {
		logger.Warn("no entries matched key", "key", key)
		return 0, nil
	}

	if err := d.rewrite(ctx, header, kept); err != nil {
		return 0, err
	}
	logger.Info("deleted entries", "key", key, "removed", removed, "kept", len(kept))
	return removed, nil
}

func (d *Diary) rewrite(ctx context.Context, header []string, rows []domain.Row) error {
	if rw, ok := d.sheet.(ports.Rewriter); ok {
		all := make([]domain.Row, 0, len(rows)+1)
		all = append(all, header)
		all = append(all, rows...)
		if err := rw.ReplaceAll(ctx, all); err != nil {
			return WriteError("replace rows", err)
		}
		return nil
	}

	// Hazard: from here until the last append, rows exist only in memory.
	if err := d.sheet.Clear(ctx); err != nil {
		return WriteError("clear sheet", err)
	}
	if err := d.sheet.AppendRow(ctx, header); err != nil {
		return &RewriteError{Header: header, Pending: rows, Err: WriteError("write header", err)}
	}
	for i, r := range rows {
		if err := d.sheet.AppendRow(ctx, r); err != nil {
			logger.Error("rewrite interrupted", "written", i, "pending", len(rows)-i, "error", err)
			return &RewriteError{
				Header:  header,
				Written: i,
				Pending: append([]domain.Row(nil), rows[i:]...),
				Err:     WriteError(fmt.Sprintf("append row %d", i+1), err),
			}
		}
	}
	return nil
}

func firstCell(r domain.Row) string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}
