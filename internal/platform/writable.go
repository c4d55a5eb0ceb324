package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// NearestExisting returns path itself, or the closest ancestor of path that
// exists.
func NearestExisting(path string) (string, error) {
	p, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", fmt.Errorf("no existing ancestor of %s", path)
		}
		p = parent
	}
}

// CheckWritable reports whether files can be created under dir. When dir
// does not exist yet the nearest existing ancestor is probed, since that is
// where the directory would be created. It returns the directory probed.
func CheckWritable(dir string) (string, error) {
	probeDir, err := NearestExisting(dir)
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp(probeDir, ".write-probe-*")
	if err != nil {
		return probeDir, fmt.Errorf("%s is not writable: %w", probeDir, err)
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		return probeDir, fmt.Errorf("removing probe file %s: %w", name, err)
	}
	return probeDir, nil
}
