package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nikki/internal/adapters/editor"
	"nikki/internal/application/commands"
	"nikki/internal/domain"
	"nikki/internal/ports"
)

var (
	addFields []string
	addEdit   bool
)

// entryEditor is replaced in tests
var entryEditor ports.Editor = editor.NewOpener()

var addCmd = &cobra.Command{
	Use:   "add [value...]",
	Short: "Append a diary entry",
	Long: `Append one diary entry. Values are given in column order; missing trailing
values take the column default. The date defaults to today. Use --field to
set a column by name, or --edit to fill in a template in $EDITOR.

Examples:
  nikki-cli add 2024-01-01 4 晴れ 30 23:00 07:00
  nikki-cli add --field 満足度=5 --field 天気=雨
  nikki-cli add --edit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema := GetDiary().Schema()
		values, err := entryValues(schema, args, addFields)
		if err != nil {
			return err
		}
		if addEdit {
			edited, err := entryEditor.Edit(entryTemplate(schema, values), "nikki-entry-*.txt")
			if err != nil {
				return err
			}
			if values, err = parseTemplate(schema, edited); err != nil {
				return err
			}
		}

		result, err := commands.NewAddCommand(GetDiary(), values).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

// entryValues merges positional values and name=value overrides into schema
// order, defaulting the date to today
func entryValues(schema domain.Schema, args, fields []string) ([]string, error) {
	if len(args) > len(schema.Fields) {
		return nil, fmt.Errorf("got %d values for %d columns", len(args), len(schema.Fields))
	}
	values := make([]string, len(schema.Fields))
	copy(values, args)

	for _, kv := range fields {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --field %q (want name=value)", kv)
		}
		idx := -1
		for i, f := range schema.Fields {
			if f.Name == strings.TrimSpace(name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("unknown column %q (columns: %s)", name, strings.Join(schema.Header(), ", "))
		}
		values[idx] = value
	}

	if strings.TrimSpace(values[0]) == "" {
		values[0] = domain.Today()
	}
	return values, nil
}

// entryTemplate renders one "column: value" line per field, with the field
// type and defaults as comments
func entryTemplate(schema domain.Schema, values []string) []byte {
	var b bytes.Buffer
	b.WriteString("# New diary entry. Empty values take the column default.\n")
	b.WriteString("# Lines starting with # are ignored.\n")
	for i, f := range schema.Fields {
		hint := string(f.Type)
		switch f.Type {
		case domain.FieldBoundedInt:
			hint += fmt.Sprintf(" %d..%d", f.Min, f.Max)
		case domain.FieldEnum:
			hint += ": " + strings.Join(f.Options, " ")
		case domain.FieldFlag:
			hint += " 0/1"
		case domain.FieldTime:
			hint += " HH:MM"
		}
		if f.Default != "" {
			hint += ", default " + f.Default
		}
		fmt.Fprintf(&b, "\n# %s\n%s: %s\n", hint, f.Name, values[i])
	}
	return b.Bytes()
}

// parseTemplate reads an edited template back into schema order
func parseTemplate(schema domain.Schema, data []byte) ([]string, error) {
	var fields []string
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"column: value\", got %q", n+1, line)
		}
		fields = append(fields, strings.TrimSpace(name)+"="+strings.TrimSpace(value))
	}
	return entryValues(schema, nil, fields)
}

func init() {
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "fill in the entry in $EDITOR")
	addCmd.Flags().StringArrayVarP(&addFields, "field", "f", nil, "set a column by name (name=value), repeatable")
	rootCmd.AddCommand(addCmd)
}
