package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nikki/internal/application"
	"nikki/internal/application/commands"
	"nikki/internal/domain"
)

// RegisterReadTools adds all read-only diary tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, diary *application.Diary) {
	s.AddTool(listTool(), listHandler(diary))
	s.AddTool(exportTool(), exportHandler(diary))
	s.AddTool(schemaTool(), schemaHandler(diary))
}

// --- list_entries ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_entries",
		mcp.WithDescription("List past diary entries, oldest first, one line per entry as column=value pairs."),
		mcp.WithString("date",
			mcp.Description("Only show entries for this date (YYYY-MM-DD). Omit to list all."),
		),
	)
}

func listHandler(diary *application.Diary) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := req.GetString("date", "")

		set, err := commands.NewListCommand(diary).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if set.Len() == 0 {
			return mcp.NewToolResultText("No past entries."), nil
		}

		key := set.Column(diary.Schema().Key().Name)
		if key < 0 {
			key = 0
		}

		var sb strings.Builder
		n := 0
		for _, rec := range set.Records {
			if date != "" && !domain.SameKey(rec[key].String(), date) {
				continue
			}
			sb.WriteString(formatRecord(set.Columns, rec))
			sb.WriteByte('\n')
			n++
		}
		if n == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No entries for %s.", date)), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- export_csv ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export_csv",
		mcp.WithDescription("Export every diary entry as CSV text with a header row (the contents of diary.csv)."),
	)
}

func exportHandler(diary *application.Diary) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewExportCommand(diary).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(result.Data)), nil
	}
}

// --- schema ---

func schemaTool() mcp.Tool {
	return mcp.NewTool("schema",
		mcp.WithDescription("Describe the diary columns: name, type, bounds, options and defaults."),
	)
}

func schemaHandler(diary *application.Diary) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		schema := diary.Schema()

		var sb strings.Builder
		fmt.Fprintf(&sb, "schema v%d\n", schema.Version)
		for _, f := range schema.Fields {
			sb.WriteString(formatField(f))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatRecord(columns []string, rec domain.Record) string {
	parts := make([]string, 0, len(columns))
	for i, col := range columns {
		v := ""
		if i < len(rec) {
			v = rec[i].String()
		}
		parts = append(parts, col+"="+v)
	}
	return strings.Join(parts, "  ")
}

func formatField(f domain.Field) string {
	s := fmt.Sprintf("%s  %s", f.Name, f.Type)
	switch f.Type {
	case domain.FieldBoundedInt:
		s += fmt.Sprintf("  %d..%d", f.Min, f.Max)
	case domain.FieldEnum:
		s += "  [" + strings.Join(f.Options, ", ") + "]"
	}
	if f.Default != "" {
		s += "  default=" + f.Default
	}
	return s
}
