package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nikki/internal/application"
	"nikki/internal/config"
	"nikki/internal/logger"
	"nikki/internal/session"
)

// Command annotations
const (
	// noSession marks commands that run without opening the diary
	noSession = "no-session"
	// ownHeader marks commands that write the header row themselves
	ownHeader = "own-header"
)

var (
	cfg  = config.FromEnv()
	sess *session.Session
)

var rootCmd = &cobra.Command{
	Use:   "nikki-cli",
	Short: "CLI for a spreadsheet-backed daily diary",
	Long: `nikki-cli records one diary entry per day in a Google Sheet (or a local
SQLite database or CSV file) and lists, exports and deletes past entries.

Configuration comes from NIKKI_* environment variables; the flags below
override them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataPath()}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if skipSession(cmd) {
			return nil
		}

		_, own := cmd.Annotations[ownHeader]
		s, err := session.Open(context.Background(), cfg, session.Options{SkipHeader: own})
		if err != nil {
			return err
		}
		sess = s
		return nil
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if sess != nil {
		sess.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, application.ErrAuth) {
			fmt.Fprintln(os.Stderr, "check the service-account credentials and that the sheet is shared with its client_email")
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar((*string)(&cfg.Backend), "backend", string(cfg.Backend), "storage backend: gsheets, sqlite or file")
	flags.StringVar(&cfg.SheetID, "sheet", cfg.SheetID, "Google spreadsheet id")
	flags.StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "service-account JSON file (default: OS keyring)")
	flags.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory for logs and local backends")
	flags.StringVar(&cfg.Schema, "schema", cfg.Schema, "schema version or YAML file (default: latest)")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log debug output to stderr")
}

func skipSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[noSession]; ok {
			return true
		}
	}
	return false
}

// GetDiary returns the diary of the opened session
func GetDiary() *application.Diary {
	return sess.Diary()
}
