package commands

import (
	"context"
	"fmt"

	"nikki/internal/application"
	"nikki/internal/domain"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	Key     string
	Removed int
	Message string
}

// DeleteCommand removes every entry for a date
type DeleteCommand struct {
	diary *application.Diary
	Key   string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(diary *application.Diary, key string) *DeleteCommand {
	return &DeleteCommand{
		diary: diary,
		Key:   key,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if err := application.ValidateRequired("date", c.Key); err != nil {
		return err
	}
	if _, ok := domain.ParseDate(c.Key); !ok {
		return &application.ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("invalid date: %s", c.Key),
		}
	}
	return nil
}

// Execute runs the delete command. When the rewrite stopped part way the
// error wraps an *application.RewriteError holding the rows to recover.
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	key := domain.CanonicalDate(c.Key)
	removed, err := c.diary.DeleteByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", key, err)
	}

	msg := fmt.Sprintf("Deleted %d entries for %s", removed, key)
	if removed == 0 {
		msg = fmt.Sprintf("No entries found for %s", key)
	}
	return &DeleteResult{
		Key:     key,
		Removed: removed,
		Message: msg,
	}, nil
}
