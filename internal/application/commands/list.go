package commands

import (
	"context"

	"nikki/internal/application"
	"nikki/internal/domain"
)

// ListCommand reads and coerces every entry
type ListCommand struct {
	diary *application.Diary
}

// NewListCommand creates a new ListCommand
func NewListCommand(diary *application.Diary) *ListCommand {
	return &ListCommand{diary: diary}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (domain.RecordSet, error) {
	return c.diary.Records(ctx)
}
