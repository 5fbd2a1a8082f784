// Package session opens the diary once per process and hands the same
// handle to whichever surface is running.
package session

import (
	"context"
	"errors"
	"fmt"

	"nikki/internal/adapters/credentials"
	"nikki/internal/adapters/filesystem"
	"nikki/internal/adapters/gsheets"
	"nikki/internal/adapters/sqlite"
	"nikki/internal/application"
	"nikki/internal/config"
	"nikki/internal/domain"
	"nikki/internal/logger"
	"nikki/internal/ports"
)

// sqliteSheetName is the sheet name used inside the local database
const sqliteSheetName = "diary"

// Session owns the opened sheet and the diary built on it
type Session struct {
	cfg    config.Config
	sheet  ports.Sheet
	diary  *application.Diary
	closed bool
}

// Options tweak how a session is opened
type Options struct {
	// Store supplies credentials when no credentials file is configured.
	// Defaults to the OS keyring.
	Store ports.CredentialStore
	// SkipHeader leaves the header bootstrap to the caller
	SkipHeader bool
}

// Open validates cfg, connects the configured backend and, unless
// opts.SkipHeader is set, makes sure the sheet carries a header row. Authentication and connection failures are
// returned as *application.StoreError.
func Open(ctx context.Context, cfg config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	schema, err := cfg.LoadSchema()
	if err != nil {
		return nil, err
	}

	sheet, err := openSheet(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		sheet: sheet,
		diary: application.NewDiary(sheet, schema),
	}

	if !opts.SkipHeader {
		if _, err := s.diary.EnsureHeader(ctx); err != nil {
			s.Close()
			return nil, err
		}
	}

	logger.Info("session opened", "backend", cfg.Backend, "schema", schema.Version)
	return s, nil
}

func openSheet(ctx context.Context, cfg config.Config, opts Options) (ports.Sheet, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		sheet, err := sqlite.Open(cfg.DatabasePath(), sqliteSheetName)
		if err != nil {
			return nil, application.ConnectionError("open database", err)
		}
		return sheet, nil

	case config.BackendFile:
		return filesystem.NewSheet(cfg.SheetFilePath()), nil

	case config.BackendSheets:
		sa, err := loadCredentials(cfg, opts)
		if err != nil {
			return nil, application.AuthError("load credentials", err)
		}
		return gsheets.Connect(ctx, sa, cfg.SheetID)
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func loadCredentials(cfg config.Config, opts Options) (*credentials.ServiceAccount, error) {
	if cfg.CredentialsFile != "" {
		return credentials.FromFile(cfg.CredentialsFile)
	}

	store := opts.Store
	if store == nil {
		store = credentials.NewKeyring()
	}
	sa, err := credentials.FromStore(store)
	if errors.Is(err, credentials.ErrNotFound) {
		return nil, fmt.Errorf("no credentials configured: set NIKKI_CREDENTIALS or run `nikki-cli credentials set`")
	}
	return sa, err
}

// Diary returns the diary bound to this session
func (s *Session) Diary() *application.Diary {
	return s.diary
}

// Schema returns the active schema
func (s *Session) Schema() domain.Schema {
	return s.diary.Schema()
}

// Config returns the configuration the session was opened with
func (s *Session) Config() config.Config {
	return s.cfg
}

// Close releases the backend. Calling it more than once is safe.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.sheet.(ports.Closer); ok {
		return c.Close()
	}
	return nil
}
