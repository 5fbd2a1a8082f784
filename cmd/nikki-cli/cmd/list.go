package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nikki/internal/application/commands"
	"nikki/internal/domain"
)

var (
	listDate  string
	listPlain bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List past entries",
	Long: `List past diary entries, oldest first.

Examples:
  nikki-cli list
  nikki-cli list --date 2024-01-01
  nikki-cli list --plain | cut -f1,2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		diary := GetDiary()
		set, err := commands.NewListCommand(diary).Execute(context.Background())
		if err != nil {
			return err
		}

		rows := filterRows(set, diary.Schema(), listDate)
		if len(rows) == 0 {
			if listDate != "" {
				fmt.Printf("No entries for %s.\n", listDate)
			} else {
				fmt.Println("No past entries.")
			}
			return nil
		}

		if listPlain {
			fmt.Println(strings.Join(set.Columns, "\t"))
			for _, r := range rows {
				fmt.Println(strings.Join(r, "\t"))
			}
			return nil
		}
		fmt.Println(renderTable(set.Columns, rows))
		return nil
	},
}

// filterRows renders the record set, keeping only rows for date when set
func filterRows(set domain.RecordSet, schema domain.Schema, date string) [][]string {
	rows := set.Strings()
	if date == "" {
		return rows
	}
	key := max(set.Column(schema.Key().Name), 0)

	var out [][]string
	for _, r := range rows {
		if key < len(r) && domain.SameKey(r[key], date) {
			out = append(out, r)
		}
	}
	return out
}

func init() {
	listCmd.Flags().StringVarP(&listDate, "date", "d", "", "only show entries for this date")
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "tab-separated output without borders")
	rootCmd.AddCommand(listCmd)
}
