// Package readme replaces the marker-bounded region of a text file.
package readme

import (
	"fmt"
	"os"
	"strings"

	"github.com/naka-gawa/readme-streak/internal/domain"
)

// Replace returns text with the span from the first start marker through the
// first end marker after it (both inclusive) replaced by fragment.
func Replace(text, start, end, fragment string) (string, error) {
	if !strings.Contains(text, start) || !strings.Contains(text, end) {
		return "", &domain.ConfigError{Message: fmt.Sprintf("markers %q and %q must both be present", start, end)}
	}

	i := strings.Index(text, start)
	j := strings.Index(text[i+len(start):], end)
	if j < 0 {
		return "", &domain.ConfigError{Message: fmt.Sprintf("marker %q must follow %q", end, start)}
	}
	j += i + len(start) + len(end)

	return text[:i] + fragment + text[j:], nil
}

// Patch rewrites the file at path with its marker region replaced by fragment.
// The file is left untouched when the markers are missing.
func Patch(path, start, end, fragment string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	patched, err := Replace(string(content), start, end, fragment)
	if err != nil {
		return fmt.Errorf("failed to patch %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(patched), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
