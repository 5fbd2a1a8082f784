package commands

import (
	"context"
	"fmt"

	"nikki/internal/application"
)

// InitResult contains the result of an init operation
type InitResult struct {
	WroteHeader bool
	Message     string
}

// InitCommand writes the header row to an empty sheet
type InitCommand struct {
	diary *application.Diary
}

// NewInitCommand creates a new InitCommand
func NewInitCommand(diary *application.Diary) *InitCommand {
	return &InitCommand{diary: diary}
}

// Execute runs the init command
func (c *InitCommand) Execute(ctx context.Context) (*InitResult, error) {
	wrote, err := c.diary.EnsureHeader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheet: %w", err)
	}

	msg := "Header already present"
	if wrote {
		msg = fmt.Sprintf("Wrote header (schema v%d, %d columns)", c.diary.Schema().Version, len(c.diary.Schema().Fields))
	}
	return &InitResult{WroteHeader: wrote, Message: msg}, nil
}
