package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"nikki/internal/adapters/filesystem"
	"nikki/internal/adapters/tui/views"
	"nikki/internal/application"
	"nikki/internal/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	sheet := filesystem.NewSheet(filepath.Join(t.TempDir(), "nikki.csv"))
	d := application.NewDiary(sheet, domain.SchemaV1)
	if _, err := d.EnsureHeader(context.Background()); err != nil {
		t.Fatal(err)
	}
	return NewApp(d, t.TempDir())
}

func TestApp_ViewSwitching(t *testing.T) {
	a := newTestApp(t)

	a.Update(views.SwitchToEntryMsg{})
	if a.state != ViewEntry {
		t.Errorf("expected entry view, got %d", a.state)
	}

	a.Update(views.SwitchToDeleteMsg{Key: "2024-01-01", Entries: 1})
	if a.state != ViewDelete || a.remove.Key != "2024-01-01" {
		t.Errorf("expected delete view targeting 2024-01-01")
	}

	a.Update(views.SwitchToRecordsMsg{})
	if a.state != ViewRecords {
		t.Errorf("expected records view, got %d", a.state)
	}
}

func TestApp_ErrorsStayOnRecords(t *testing.T) {
	a := newTestApp(t)
	a.state = ViewEntry

	_, cmd := a.Update(views.ErrMsg{Err: application.WriteError("append row", errors.New("quota"))})
	if cmd != nil {
		t.Error("expected no quit for a write error")
	}
	if a.state != ViewRecords || !a.records.MessageErr {
		t.Error("expected error shown on records view")
	}
	if a.Err() != nil {
		t.Error("expected no fatal error")
	}
}

func TestApp_AuthErrorQuits(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(views.ErrMsg{Err: application.AuthError("read rows", errors.New("token expired"))})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !errors.Is(a.Err(), application.ErrAuth) {
		t.Errorf("expected fatal auth error, got %v", a.Err())
	}
}

func TestApp_DoneReloads(t *testing.T) {
	a := newTestApp(t)
	a.state = ViewExport

	_, cmd := a.Update(views.DoneMsg{Message: "Saved entry for 2024-01-01"})
	if a.state != ViewRecords || a.records.Message == "" {
		t.Error("expected success message on records view")
	}
	if _, ok := cmd().(views.RecordsLoadedMsg); !ok {
		t.Error("expected reload after a write")
	}
}
