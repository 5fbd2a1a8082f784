package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"nikki/internal/application/commands"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the header row if the sheet has none",
	Long: `Check the connection and write the schema's column names as row 1 when the
sheet is still empty. An existing header is never changed.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{ownHeader: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewInitCommand(GetDiary()).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
