package session

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DefaultExportName returns the file name used when no export path is given.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("gpt_chat_export_%s.json", now.Format("20060102_150405"))
}

// WriteHistory encodes the history as a JSON array.
func (s *Session) WriteHistory(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.History()); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return nil
}

// ExportHistory writes the history to path, or to a timestamped file in the
// working directory when path is empty. It returns the path written.
func (s *Session) ExportHistory(path string) (string, error) {
	if path == "" {
		path = DefaultExportName(s.now())
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := s.WriteHistory(f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
