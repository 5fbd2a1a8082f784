package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"nikki/internal/adapters/filesystem"
	"nikki/internal/application"
	"nikki/internal/application/commands"
	"nikki/internal/domain"
	"nikki/internal/logger"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete every entry of a date",
	Long: `Delete every entry whose date is the given day. The sheet is rewritten
without those rows.

Warning: This operation cannot be undone. If the rewrite stops part way,
the rows that were not stored are saved to a recovery CSV in the data
directory.

Examples:
  nikki-cli delete 2024-01-01
  nikki-cli delete 2024/1/1 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := args[0]
		ctx := context.Background()

		deleteCmd := commands.NewDeleteCommand(GetDiary(), date)
		if err := deleteCmd.Validate(); err != nil {
			return err
		}

		if !deleteYes {
			confirmed := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Delete every entry for %s?", domain.CanonicalDate(date))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed).
				WithTheme(huh.ThemeDracula()).
				Run()
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Cancelled")
				return nil
			}
		}

		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			var rwErr *application.RewriteError
			if errors.As(err, &rwErr) {
				path, werr := filesystem.WriteRecovery(cfg.DataPath(), rwErr, time.Now())
				if werr != nil {
					logger.Error("failed to save recovery file", "error", werr)
					os.Stderr.Write(domain.WriteRowsCSV(rwErr.Header, rwErr.Pending))
					return fmt.Errorf("%w (rows not stored were printed above)", err)
				}
				return fmt.Errorf("%w (rows not stored were saved to %s)", err, path)
			}
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
