package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nikki/internal/domain"
)

// Backend names the storage behind the diary sheet
type Backend string

const (
	BackendSheets Backend = "gsheets"
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
)

const (
	DefaultBackend = BackendSheets
	DefaultDataDir = "~/.local/share/nikki"
)

// Config is the process configuration. Values come from NIKKI_* environment
// variables and may be overridden by command-line flags.
type Config struct {
	Backend         Backend
	SheetID         string
	CredentialsFile string
	DataDir         string
	// Schema is a built-in version number ("1", "2") or a path to a YAML file.
	// Empty means the latest built-in schema.
	Schema string
	Debug  bool
}

// FromEnv builds a Config from the environment, falling back to defaults
func FromEnv() Config {
	cfg := Config{
		Backend:         Backend(envOr("NIKKI_BACKEND", string(DefaultBackend))),
		SheetID:         os.Getenv("NIKKI_SHEET_ID"),
		CredentialsFile: os.Getenv("NIKKI_CREDENTIALS"),
		DataDir:         envOr("NIKKI_DATA", defaultDataDir()),
		Schema:          os.Getenv("NIKKI_SCHEMA"),
	}
	cfg.Debug, _ = strconv.ParseBool(os.Getenv("NIKKI_DEBUG"))
	return cfg
}

// Validate checks that the selected backend has what it needs
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSheets:
		if c.SheetID == "" {
			return fmt.Errorf("spreadsheet id is required for the %s backend (set NIKKI_SHEET_ID or --sheet)", c.Backend)
		}
	case BackendSQLite, BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("data directory is required for the %s backend", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendSheets, BackendSQLite, BackendFile)
	}
	return nil
}

// DataPath returns the expanded data directory
func (c Config) DataPath() string {
	return expandHome(c.DataDir)
}

// DatabasePath is the SQLite file used by the sqlite backend
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataPath(), "nikki.db")
}

// SheetFilePath is the CSV file used by the file backend
func (c Config) SheetFilePath() string {
	return filepath.Join(c.DataPath(), "nikki.csv")
}

// LoadSchema resolves the configured schema
func (c Config) LoadSchema() (domain.Schema, error) {
	if c.Schema == "" {
		return domain.LatestSchema(), nil
	}
	if v, err := strconv.Atoi(c.Schema); err == nil {
		return domain.LookupSchema(v)
	}
	return LoadSchemaFile(expandHome(c.Schema))
}

func envOr(key, fallback string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}

// defaultDataDir follows XDG_DATA_HOME when set
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "nikki")
	}
	return DefaultDataDir
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
