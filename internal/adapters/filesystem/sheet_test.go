package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"nikki/internal/domain"
)

func TestRows_MissingFile(t *testing.T) {
	s := NewSheet(filepath.Join(t.TempDir(), "diary.csv"))
	rows, err := s.Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestAppendRow_CreatesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "diary.csv")
	s := NewSheet(path)

	if err := s.AppendRow(ctx, domain.Row{"日付", "メモ"}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}
	if err := s.AppendRow(ctx, domain.Row{"2024-01-01", "雨, 寒い"}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "日付,メモ\n2024-01-01,\"雨, 寒い\"\n"
	if string(data) != want {
		t.Errorf("unexpected file content:\n%s", data)
	}

	rows, _ := s.Rows(ctx)
	if len(rows) != 2 || rows[1][1] != "雨, 寒い" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestRows_RaggedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.csv")
	os.WriteFile(path, []byte("a,b,c\n1\n2,3\n"), 0644)

	rows, err := NewSheet(path).Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 || len(rows[1]) != 1 || len(rows[2]) != 2 {
		t.Errorf("expected ragged rows preserved, got %v", rows)
	}
}

func TestInsertRow(t *testing.T) {
	ctx := context.Background()
	s := NewSheet(filepath.Join(t.TempDir(), "diary.csv"))

	s.AppendRow(ctx, domain.Row{"2024-01-01"})
	if err := s.InsertRow(ctx, domain.Row{"日付"}, 1); err != nil {
		t.Fatalf("InsertRow failed: %v", err)
	}
	if err := s.InsertRow(ctx, domain.Row{"2024-01-02"}, 10); err != nil {
		t.Fatalf("InsertRow past end failed: %v", err)
	}

	rows, _ := s.Rows(ctx)
	want := []domain.Row{{"日付"}, {"2024-01-01"}, {"2024-01-02"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %v, got %v", want, rows)
	}

	if err := s.InsertRow(ctx, domain.Row{"x"}, 0); err == nil {
		t.Error("expected error for position 0")
	}
}

func TestReplaceAllAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewSheet(filepath.Join(dir, "diary.csv"))

	s.AppendRow(ctx, domain.Row{"old"})
	rows := []domain.Row{{"日付"}, {"2024-01-03"}}
	if err := s.ReplaceAll(ctx, rows); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	got, _ := s.Rows(ctx)
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("expected %v, got %v", rows, got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected temp file cleaned up, found %d entries", len(entries))
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	got, _ = s.Rows(ctx)
	if len(got) != 0 {
		t.Errorf("expected empty sheet, got %v", got)
	}
}
