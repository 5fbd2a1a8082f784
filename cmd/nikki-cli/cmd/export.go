package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nikki/internal/adapters/filesystem"
	"nikki/internal/application/commands"
	"nikki/internal/domain"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every entry as CSV",
	Long: `Export every entry as UTF-8 CSV with a header row.

Examples:
  nikki-cli export                 # writes diary.csv
  nikki-cli export -o - | less     # writes to stdout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewExportCommand(GetDiary()).Execute(context.Background())
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			_, err := os.Stdout.Write(result.Data)
			return err
		}
		if err := filesystem.WriteExport(exportOutput, result.Data); err != nil {
			return err
		}
		fmt.Printf("Exported %d entries to %s\n", result.Entries, exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", domain.ExportFileName, "output file, - for stdout")
	rootCmd.AddCommand(exportCmd)
}
