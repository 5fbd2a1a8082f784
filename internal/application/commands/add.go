package commands

import (
	"context"
	"fmt"

	"nikki/internal/application"
	"nikki/internal/domain"
)

// AddResult contains the result of an add operation
type AddResult struct {
	Row     domain.Row
	Message string
}

// AddCommand appends one diary entry
type AddCommand struct {
	diary  *application.Diary
	Values []string
}

// NewAddCommand creates a new AddCommand. Values are in schema order; missing
// trailing values take the field defaults.
func NewAddCommand(diary *application.Diary, values []string) *AddCommand {
	return &AddCommand{
		diary:  diary,
		Values: values,
	}
}

// Validate checks the values against the schema and returns the row to store
func (c *AddCommand) Validate() (domain.Row, error) {
	if len(c.Values) == 0 {
		return nil, &application.ValidationError{
			Field:   "values",
			Message: "at least the date is required",
		}
	}
	return application.NormalizeEntry(c.diary.Schema(), c.Values)
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context) (*AddResult, error) {
	row, err := c.Validate()
	if err != nil {
		return nil, err
	}

	if err := c.diary.Append(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return &AddResult{
		Row:     row,
		Message: fmt.Sprintf("Saved entry for %s", row[0]),
	}, nil
}
