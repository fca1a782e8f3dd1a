// Package output derives the export file name and writes the result.
package output

import (
	"fmt"
	"os"
	"strings"
)

// Filename names the export after the board: the title with all
// whitespace stripped, plus the format extension.
func Filename(title, format string) string {
	return strings.Join(strings.Fields(title), "") + "." + format
}

// Write stores content at path.
func Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}
