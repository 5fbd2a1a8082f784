package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nikki/internal/domain"
)

var schemaCmd = &cobra.Command{
	Use:         "schema",
	Short:       "Show the diary columns",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noSession: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := cfg.LoadSchema()
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(schema.Fields))
		for _, f := range schema.Fields {
			var constraint string
			switch {
			case f.Type == domain.FieldBoundedInt:
				constraint = fmt.Sprintf("%d..%d", f.Min, f.Max)
			case len(f.Options) > 0:
				constraint = strings.Join(f.Options, " ")
			}
			rows = append(rows, []string{f.Name, string(f.Type), constraint, f.Default})
		}

		fmt.Printf("schema v%d\n", schema.Version)
		fmt.Println(renderTable([]string{"column", "type", "allowed", "default"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
