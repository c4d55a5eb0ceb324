package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdscaffold/gdscaffold/internal/faults"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// excludedNames are never copied: VCS metadata, editor caches, OS litter.
var excludedNames = map[string]bool{
	".git":      true,
	".godot":    true,
	".import":   true,
	".DS_Store": true,
	"Thumbs.db": true,
}

// Source describes one directory to copy.
type Source struct {
	Dir        string   // absolute source directory
	Dest       string   // destination, relative to the project dir
	Extensions []string // accepted suffixes such as ".blend"; empty accepts all
}

// Result counts what a copy did.
type Result struct {
	Copied  int
	Skipped int // files filtered out by extension
}

// Copier copies files through a filesystem.
type Copier struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewCopier returns a Copier using fs, or the OS filesystem when fs is nil.
func NewCopier(fs afero.Fs, logger *zap.Logger) *Copier {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{fs: fs, logger: logger}
}

// Copy walks src.Dir and copies every accepted regular file to
// projectDir/src.Dest/<relative path>, creating directories as needed and
// overwriting existing files.
func (c *Copier) Copy(src Source, projectDir string) (*Result, error) {
	info, err := c.fs.Stat(src.Dir)
	if os.IsNotExist(err) {
		return nil, faults.Configuration(src.Dir, "asset source does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("reading asset source %s: %w", src.Dir, err)
	}
	if !info.IsDir() {
		return nil, faults.Configuration(src.Dir, "asset source is not a directory")
	}

	destRoot := filepath.Join(projectDir, filepath.FromSlash(src.Dest))
	result := &Result{}

	err = afero.Walk(c.fs, src.Dir, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walking %s: %w", path, walkErr)
		}
		if path != src.Dir && shouldExclude(fi.Name()) {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !fi.Mode().IsRegular() {
			// Directories are created on demand; symlinks and devices are skipped.
			return nil
		}
		if !MatchExtension(fi.Name(), src.Extensions) {
			result.Skipped++
			return nil
		}

		rel, err := filepath.Rel(src.Dir, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		if err := c.copyFile(path, filepath.Join(destRoot, rel), fi.Mode().Perm()); err != nil {
			return err
		}
		result.Copied++
		return nil
	})
	if err != nil {
		return result, err
	}

	c.logger.Info("assets copied",
		zap.String("source", src.Dir),
		zap.String("dest", destRoot),
		zap.Strings("extensions", src.Extensions),
		zap.Int("copied", result.Copied),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// CopyFile copies one file to dst, creating dst's directory. A missing src
// is a ConfigurationError.
func (c *Copier) CopyFile(src, dst string) error {
	info, err := c.fs.Stat(src)
	if os.IsNotExist(err) {
		return faults.Configuration(src, "file does not exist")
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if info.IsDir() {
		return faults.Configuration(src, "expected a file, found a directory")
	}
	if err := c.copyFile(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	c.logger.Debug("file copied", zap.String("source", src), zap.String("dest", dst))
	return nil
}

// copyFile streams src into dst with the given permissions.
func (c *Copier) copyFile(src, dst string, perm os.FileMode) error {
	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return faults.IO("mkdir", filepath.Dir(dst), err)
	}

	in, err := c.fs.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := c.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return faults.IO("create", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return faults.IO("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return faults.IO("close", dst, err)
	}
	return nil
}

// MatchExtension reports whether name ends with one of exts, ignoring case.
// An empty exts accepts every name.
func MatchExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func shouldExclude(name string) bool {
	return excludedNames[name]
}
