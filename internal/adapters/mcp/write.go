package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nikki/internal/application"
	"nikki/internal/application/commands"
	"nikki/internal/domain"
)

// RegisterWriteTools adds the diary tools that modify the sheet.
func RegisterWriteTools(s *server.MCPServer, diary *application.Diary) {
	s.AddTool(addTool(diary.Schema()), addHandler(diary))
	s.AddTool(deleteTool(), deleteHandler(diary))
}

// --- add_entry ---

// addTool takes one string argument per schema field
func addTool(schema domain.Schema) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Append a diary entry. Omitted fields use their defaults; the date defaults to today."),
	}
	for _, f := range schema.Fields {
		desc := formatField(f)
		if len(f.Options) > 0 {
			opts = append(opts, mcp.WithString(f.Name, mcp.Description(desc), mcp.Enum(f.Options...)))
			continue
		}
		opts = append(opts, mcp.WithString(f.Name, mcp.Description(desc)))
	}
	return mcp.NewTool("add_entry", opts...)
}

func addHandler(diary *application.Diary) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		schema := diary.Schema()
		values := make([]string, len(schema.Fields))
		for i, f := range schema.Fields {
			values[i] = req.GetString(f.Name, "")
		}
		if values[0] == "" {
			values[0] = domain.Today()
		}

		result, err := commands.NewAddCommand(diary, values).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_entry ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_entry",
		mcp.WithDescription("Delete every entry recorded for a date. The sheet is rewritten without those rows."),
		mcp.WithString("date",
			mcp.Description("Date of the entries to delete (YYYY-MM-DD)"),
			mcp.Required(),
		),
	)
}

func deleteHandler(diary *application.Diary) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := req.GetString("date", "")

		result, err := commands.NewDeleteCommand(diary, date).Execute(ctx)
		if err != nil {
			var rwErr *application.RewriteError
			if errors.As(err, &rwErr) {
				csv := domain.WriteRowsCSV(rwErr.Header, rwErr.Pending)
				return mcp.NewToolResultError(fmt.Sprintf("%v\nrows not stored:\n%s", err, csv)), nil
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
