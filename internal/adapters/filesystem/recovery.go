package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nikki/internal/application"
	"nikki/internal/domain"
)

// WriteRecovery saves the rows a failed rewrite did not store, header first,
// as a timestamped CSV file in dir. Returns the file path.
func WriteRecovery(dir string, rwErr *application.RewriteError, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create recovery directory: %w", err)
	}

	name := fmt.Sprintf("nikki-recovery-%s.csv", now.Format("20060102-150405"))
	path := filepath.Join(dir, name)
	data := domain.WriteRowsCSV(rwErr.Header, rwErr.Pending)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write recovery file: %w", err)
	}
	return path, nil
}

// WriteExport writes exported CSV to path, replacing any existing file
func WriteExport(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
