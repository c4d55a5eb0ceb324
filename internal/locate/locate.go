// Package locate finds workspace marker files by walking up from a
// starting directory.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMarker identifies the root of a scaffolding workspace.
const DefaultMarker = "project.ini"

// DefaultMaxDepth is how many parent directories above start are searched:
// start, its parent and its grandparent.
const DefaultMaxDepth = 2

// ErrNotFound is returned when no marker exists within maxDepth levels.
var ErrNotFound = errors.New("marker not found")

// FindMarker looks for marker in start and up to maxDepth of its parents.
// It returns the directory containing the marker and how many levels above
// start it was found.
func FindMarker(start, marker string, maxDepth int) (string, int, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	if maxDepth < 0 {
		maxDepth = 0
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", 0, fmt.Errorf("resolving %s: %w", start, err)
	}

	for depth := 0; depth <= maxDepth; depth++ {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && !info.IsDir() {
			return dir, depth, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", 0, fmt.Errorf("%s within %d levels of %s: %w", marker, maxDepth, start, ErrNotFound)
}
