package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"

	"nikki/internal/adapters/credentials"
	"nikki/internal/application"
	"nikki/internal/config"
)

func TestOpen_SQLiteWritesHeader(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Backend: config.BackendSQLite, DataDir: t.TempDir(), Schema: "1"}

	s, err := Open(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	table, err := s.Diary().ReadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Header) != 6 || table.Header[0] != "日付" {
		t.Errorf("unexpected header: %v", table.Header)
	}
	if !table.Empty() {
		t.Errorf("expected no entries, got %d", len(table.Rows))
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Reopening must not write a second header
	s, err = Open(ctx, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	table, _ = s.Diary().ReadAll(ctx)
	if !table.Empty() {
		t.Errorf("expected header only after reopen, got %v", table.Rows)
	}
}

func TestOpen_FileBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := config.Config{Backend: config.BackendFile, DataDir: dir}

	s, err := Open(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if s.Schema().Version != 2 {
		t.Errorf("expected latest schema, got v%d", s.Schema().Version)
	}
	if _, err := os.Stat(filepath.Join(dir, "nikki.csv")); err != nil {
		t.Errorf("expected nikki.csv to be created: %v", err)
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Backend: config.BackendSheets}, Options{})
	if err == nil {
		t.Fatal("expected error without spreadsheet id")
	}
}

func TestOpen_MissingCredentialsIsAuthError(t *testing.T) {
	keyring.MockInit()
	cfg := config.Config{Backend: config.BackendSheets, SheetID: "sheet"}

	_, err := Open(context.Background(), cfg, Options{Store: credentials.NewKeyring()})
	if !errors.Is(err, application.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
	if !application.IsFatal(err) {
		t.Error("expected missing credentials to be fatal")
	}
}

func TestOpen_BadCredentialsFileIsAuthError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	os.WriteFile(path, []byte(`{"client_email":"a@b"}`), 0600)
	cfg := config.Config{Backend: config.BackendSheets, SheetID: "sheet", CredentialsFile: path}

	_, err := Open(context.Background(), cfg, Options{})
	if !errors.Is(err, application.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}

func TestOpen_SkipHeader(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Backend: config.BackendFile, DataDir: t.TempDir()}

	s, err := Open(ctx, cfg, Options{SkipHeader: true})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	wrote, err := s.Diary().EnsureHeader(ctx)
	if err != nil || !wrote {
		t.Errorf("expected caller to write the header, got wrote=%v err=%v", wrote, err)
	}
}
