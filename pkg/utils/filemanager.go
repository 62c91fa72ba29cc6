// =============================================================================
// Tributos - File Utilities
// =============================================================================
//
// Output file management for the export commands: directory creation and
// export file naming. Names come from a configurable pattern with
// placeholder substitution so repeated exports never collide.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ExpandNamePattern generates an export file name from a pattern.
// Placeholders:
//
//	{name}      - the source name
//	{timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//	{uuid}      - a random UUID
func ExpandNamePattern(pattern, name string) string {
	out := pattern
	out = strings.ReplaceAll(out, "{name}", name)
	out = strings.ReplaceAll(out, "{timestamp}", time.Now().Format("20060102_150405"))
	out = strings.ReplaceAll(out, "{uuid}", uuid.New().String())
	return out
}

// WithExtension swaps or appends the extension of a file name.
func WithExtension(fileName, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	current := filepath.Ext(fileName)
	return strings.TrimSuffix(fileName, current) + ext
}
