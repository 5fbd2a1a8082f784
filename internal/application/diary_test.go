package application

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"nikki/internal/domain"
)

// fakeSheet is an in-memory ports.Sheet. appendFailAt makes the n-th
// AppendRow call (1-based) fail.
type fakeSheet struct {
	rows         []domain.Row
	readErr      error
	appendCalls  int
	appendFailAt int
	clears       int
}

func (s *fakeSheet) Rows(_ context.Context) ([]domain.Row, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := make([]domain.Row, len(s.rows))
	for i, r := range s.rows {
		out[i] = append(domain.Row(nil), r...)
	}
	return out, nil
}

func (s *fakeSheet) AppendRow(_ context.Context, row domain.Row) error {
	s.appendCalls++
	if s.appendFailAt > 0 && s.appendCalls == s.appendFailAt {
		return errors.New("quota exceeded")
	}
	s.rows = append(s.rows, append(domain.Row(nil), row...))
	return nil
}

func (s *fakeSheet) Clear(_ context.Context) error {
	s.clears++
	s.rows = nil
	return nil
}

func (s *fakeSheet) InsertRow(_ context.Context, row domain.Row, position int) error {
	i := position - 1
	if i > len(s.rows) {
		i = len(s.rows)
	}
	s.rows = append(s.rows, nil)
	copy(s.rows[i+1:], s.rows[i:])
	s.rows[i] = append(domain.Row(nil), row...)
	return nil
}

// rewritingSheet adds the single-call replace
type rewritingSheet struct {
	fakeSheet
	replaces int
}

func (s *rewritingSheet) ReplaceAll(_ context.Context, rows []domain.Row) error {
	s.replaces++
	s.rows = rows
	return nil
}

var scenarioSchema = domain.Schema{
	Version: 1,
	Fields: []domain.Field{
		{Name: "date", Type: domain.FieldDate},
		{Name: "satisfaction", Type: domain.FieldInt},
		{Name: "weather", Type: domain.FieldEnum, Options: domain.WeatherOptions},
		{Name: "outdoor_minutes", Type: domain.FieldMinutes},
		{Name: "sleep", Type: domain.FieldTime},
		{Name: "wake", Type: domain.FieldTime},
	},
}

func TestDiary_Scenario(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{}
	d := NewDiary(sheet, scenarioSchema)

	wrote, err := d.EnsureHeader(ctx)
	if err != nil {
		t.Fatalf("EnsureHeader failed: %v", err)
	}
	if !wrote {
		t.Error("expected header to be written on empty sheet")
	}

	row := domain.Row{"2024-01-01", "4", "晴れ", "30", "23:00", "07:00"}
	if err := d.Append(ctx, row); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	table, err := d.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 record, got %d", len(table.Rows))
	}
	if !reflect.DeepEqual(table.Rows[0], row) {
		t.Errorf("expected %v, got %v", row, table.Rows[0])
	}

	removed, err := d.DeleteByKey(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("DeleteByKey failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected removedCount=1, got %d", removed)
	}

	table, err = d.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !table.Empty() {
		t.Errorf("expected zero records, got %d", len(table.Rows))
	}
	if !reflect.DeepEqual(table.Header, scenarioSchema.Header()) {
		t.Errorf("expected header to survive delete, got %v", table.Header)
	}
}

func TestDiary_EnsureHeaderIsIdempotent(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{rows: []domain.Row{{"date", "satisfaction"}}}
	d := NewDiary(sheet, scenarioSchema)

	wrote, err := d.EnsureHeader(ctx)
	if err != nil {
		t.Fatalf("EnsureHeader failed: %v", err)
	}
	if wrote {
		t.Error("expected existing header to be left alone")
	}
	if len(sheet.rows) != 1 || len(sheet.rows[0]) != 2 {
		t.Errorf("expected shorter header untouched, got %v", sheet.rows)
	}
}

func TestDiary_EnsureHeaderOnBlankFirstRow(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{rows: []domain.Row{{"", ""}, {"2024-01-01", "3"}}}
	d := NewDiary(sheet, scenarioSchema)

	wrote, err := d.EnsureHeader(ctx)
	if err != nil {
		t.Fatalf("EnsureHeader failed: %v", err)
	}
	if !wrote {
		t.Fatal("expected header written over blank first row")
	}
	if !reflect.DeepEqual([]string(sheet.rows[0]), scenarioSchema.Header()) {
		t.Errorf("expected header at row 1, got %v", sheet.rows[0])
	}
}

func TestDiary_DeleteByKeyKeepsOrder(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{rows: []domain.Row{
		scenarioSchema.Header(),
		{"2024-01-01", "1"},
		{"2024-01-02", "2"},
		{"2024/1/1", "3"},
		{"", ""},
		{"2024-01-03", "4"},
	}}
	d := NewDiary(sheet, scenarioSchema)

	removed, err := d.DeleteByKey(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("DeleteByKey failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	table, _ := d.ReadAll(ctx)
	var keys []string
	for _, r := range table.Rows {
		keys = append(keys, r[0])
	}
	want := []string{"2024-01-02", "2024-01-03"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("expected %v, got %v", want, keys)
	}
	if sheet.clears != 1 {
		t.Errorf("expected one clear, got %d", sheet.clears)
	}
}

func TestDiary_DeleteByKeyNotFound(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{rows: []domain.Row{
		scenarioSchema.Header(),
		{"2024-01-02", "2"},
	}}
	d := NewDiary(sheet, scenarioSchema)

	removed, err := d.DeleteByKey(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed, got %d", removed)
	}
	if sheet.clears != 0 {
		t.Error("expected sheet untouched when nothing matched")
	}
}

func TestDiary_DeleteByKeyUsesRewriter(t *testing.T) {
	ctx := context.Background()
	sheet := &rewritingSheet{fakeSheet: fakeSheet{rows: []domain.Row{
		scenarioSchema.Header(),
		{"2024-01-01", "1"},
		{"2024-01-02", "2"},
	}}}
	d := NewDiary(sheet, scenarioSchema)

	removed, err := d.DeleteByKey(ctx, "2024-01-02")
	if err != nil {
		t.Fatalf("DeleteByKey failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if sheet.replaces != 1 || sheet.clears != 0 || sheet.appendCalls != 0 {
		t.Errorf("expected a single replace, got replaces=%d clears=%d appends=%d",
			sheet.replaces, sheet.clears, sheet.appendCalls)
	}
	if len(sheet.rows) != 2 || sheet.rows[1][0] != "2024-01-01" {
		t.Errorf("unexpected rows after replace: %v", sheet.rows)
	}
}

func TestDiary_DeleteByKeyPartialRewrite(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{
		rows: []domain.Row{
			scenarioSchema.Header(),
			{"2024-01-01", "1"},
			{"2024-01-02", "2"},
			{"2024-01-03", "3"},
			{"2024-01-04", "4"},
		},
		// header is append 1, then survivors; fail on the second survivor
		appendFailAt: 3,
	}
	d := NewDiary(sheet, scenarioSchema)

	_, err := d.DeleteByKey(ctx, "2024-01-01")

	var rwErr *RewriteError
	if !errors.As(err, &rwErr) {
		t.Fatalf("expected RewriteError, got %v", err)
	}
	if !errors.Is(err, ErrWrite) {
		t.Error("expected rewrite error to match ErrWrite")
	}
	if rwErr.Written != 1 {
		t.Errorf("expected 1 row written, got %d", rwErr.Written)
	}
	if len(rwErr.Pending) != 2 || rwErr.Pending[0][0] != "2024-01-03" {
		t.Errorf("unexpected pending rows: %v", rwErr.Pending)
	}
	// Sheet holds header + the one survivor written before the failure.
	if len(sheet.rows) != 2 {
		t.Errorf("expected 2 rows on sheet, got %d", len(sheet.rows))
	}
}

func TestDiary_ReadErrorKind(t *testing.T) {
	sheet := &fakeSheet{readErr: errors.New("timeout")}
	d := NewDiary(sheet, scenarioSchema)

	_, err := d.ReadAll(context.Background())
	if !errors.Is(err, ErrRead) {
		t.Errorf("expected ErrRead, got %v", err)
	}
	if IsFatal(err) {
		t.Error("read errors must not end the session")
	}
}

func TestDiary_AppendErrorKind(t *testing.T) {
	sheet := &fakeSheet{appendFailAt: 1}
	d := NewDiary(sheet, scenarioSchema)

	err := d.Append(context.Background(), domain.Row{"2024-01-01"})
	if !errors.Is(err, ErrWrite) {
		t.Errorf("expected ErrWrite, got %v", err)
	}
}

func TestDiary_RecordsCoercesWithoutFailing(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{
		scenarioSchema.Header(),
		{"2024-01-01", "abc", "晴れ", "30", "23:00", "07:00"},
	}}
	d := NewDiary(sheet, scenarioSchema)

	set, err := d.Records(context.Background())
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if !set.Records[0][1].IsMissing() {
		t.Error("expected malformed satisfaction to be missing")
	}
	if f, _ := set.Records[0][3].Float(); f != 30 {
		t.Errorf("expected sibling cell intact, got %v", f)
	}
}

func TestDiary_RoundTripKeepsText(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{}
	d := NewDiary(sheet, scenarioSchema)
	if _, err := d.EnsureHeader(ctx); err != nil {
		t.Fatal(err)
	}

	rows := []domain.Row{
		{"2024-01-01", "04", "晴れのち雨", "30", "23:00", "07:00"},
		{"2024-01-02", " 5", "雪, 強風", "0", "", ""},
	}
	for _, r := range rows {
		if err := d.Append(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	table, err := d.ReadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table.Rows, rows) {
		t.Errorf("expected %v, got %v", rows, table.Rows)
	}
}

func TestDiary_DeleteKeepsColumnsBeyondOldHeader(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{rows: []domain.Row{domain.SchemaV1.Header()}}
	d := NewDiary(sheet, domain.SchemaV2)

	rows := []domain.Row{
		{"2024-01-01", "4", "晴れ", "30", "23:00", "07:00", "8000", "60.5", "1", "0", "散歩"},
		{"2024-01-02", "2", "雨", "0", "00:30", "08:00", "1200", "61", "0", "1", ""},
	}
	for _, r := range rows {
		if err := d.Append(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	table, err := d.ReadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Header) != len(domain.SchemaV2.Fields) {
		t.Errorf("expected header widened to %d columns, got %v", len(domain.SchemaV2.Fields), table.Header)
	}
	if !reflect.DeepEqual(table.Rows[0], rows[0]) {
		t.Errorf("expected full row on read, got %v", table.Rows[0])
	}

	removed, err := d.DeleteByKey(ctx, "2024-01-02")
	if err != nil {
		t.Fatalf("DeleteByKey failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if len(sheet.rows) != 2 {
		t.Fatalf("expected header and one survivor, got %v", sheet.rows)
	}
	if !reflect.DeepEqual([]string(sheet.rows[0]), domain.SchemaV1.Header()) {
		t.Errorf("expected stored header unchanged, got %v", sheet.rows[0])
	}
	if !reflect.DeepEqual(sheet.rows[1], rows[0]) {
		t.Errorf("expected survivor stored with all %d cells, got %v", len(rows[0]), sheet.rows[1])
	}
}

func TestDiary_BackendErrorKindIsKept(t *testing.T) {
	sheet := &fakeSheet{readErr: AuthError("read rows", errors.New("token expired"))}
	d := NewDiary(sheet, scenarioSchema)

	_, err := d.ReadAll(context.Background())
	if !errors.Is(err, ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
	if errors.Is(err, ErrRead) {
		t.Error("expected auth failure not to be reclassified as a read error")
	}
	if !IsFatal(err) {
		t.Error("expected auth failure during a session to be fatal")
	}

	_, err = d.DeleteByKey(context.Background(), "2024-01-01")
	if !IsFatal(err) {
		t.Errorf("expected fatal error from delete, got %v", err)
	}
}
