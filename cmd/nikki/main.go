package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"nikki/internal/adapters/tui"
	"nikki/internal/config"
	"nikki/internal/logger"
	"nikki/internal/session"
)

func main() {
	cfg := config.FromEnv()
	flag.StringVar((*string)(&cfg.Backend), "backend", string(cfg.Backend), "storage backend: gsheets, sqlite or file")
	flag.StringVar(&cfg.SheetID, "sheet", cfg.SheetID, "Google spreadsheet id")
	flag.StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "service-account JSON file (default: OS keyring)")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory for logs and local backends")
	flag.StringVar(&cfg.Schema, "schema", cfg.Schema, "schema version or YAML file")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	flag.Parse()

	// The TUI owns the terminal, so logs only go to the file
	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataPath(), FileOnly: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sess, err := session.Open(context.Background(), cfg, session.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	app := tui.NewApp(sess.Diary(), cfg.DataPath())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		sess.Close()
		os.Exit(1)
	}
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		sess.Close()
		os.Exit(1)
	}
}
