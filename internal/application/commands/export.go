package commands

import (
	"context"

	"nikki/internal/application"
	"nikki/internal/domain"
)

// ExportResult contains the exported CSV
type ExportResult struct {
	Data    []byte
	Entries int
}

// ExportCommand renders every entry as CSV
type ExportCommand struct {
	diary *application.Diary
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(diary *application.Diary) *ExportCommand {
	return &ExportCommand{diary: diary}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	set, err := c.diary.Records(ctx)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Data:    domain.ExportCSV(set, c.diary.Schema()),
		Entries: set.Len(),
	}, nil
}
