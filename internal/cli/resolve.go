package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gdscaffold/gdscaffold/internal/config"
	"github.com/gdscaffold/gdscaffold/internal/editor"
	"github.com/gdscaffold/gdscaffold/internal/locate"
	"github.com/gdscaffold/gdscaffold/internal/manifest"
	"go.uber.org/zap"
)

// manifestSource says where a manifest came from.
type manifestSource struct {
	Path    string // empty for the built-in default
	Default bool
}

// findManifest returns the manifest path to use. An explicit path wins;
// otherwise the marker file is searched for from the working directory
// upward. When nothing is found the built-in default applies.
func findManifest(explicit string) (manifestSource, error) {
	if explicit != "" {
		return manifestSource{Path: explicit}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return manifestSource{}, fmt.Errorf("getting current directory: %w", err)
	}

	marker := config.ManifestMarker()
	dir, depth, err := locate.FindMarker(cwd, marker, locate.DefaultMaxDepth)
	if errors.Is(err, locate.ErrNotFound) {
		logger.Debug("no manifest found, using built-in default", zap.String("marker", marker), zap.String("cwd", cwd))
		return manifestSource{Default: true}, nil
	}
	if err != nil {
		return manifestSource{}, err
	}

	logger.Debug("manifest found", zap.String("dir", dir), zap.Int("depth", depth))
	return manifestSource{Path: filepath.Join(dir, marker)}, nil
}

// loadManifest finds, validates and decodes the manifest.
func loadManifest(explicit string) (*manifest.Manifest, manifestSource, error) {
	src, err := findManifest(explicit)
	if err != nil {
		return nil, src, err
	}
	if src.Default {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, src, fmt.Errorf("getting current directory: %w", err)
		}
		return manifest.Default(cwd), src, nil
	}

	m, err := manifest.Load(src.Path)
	if err != nil {
		return nil, src, err
	}
	return m, src, nil
}

// describe names a manifest source for humans.
func (s manifestSource) describe() string {
	if s.Default {
		return "built-in default manifest"
	}
	return s.Path
}

// editorExecutable applies the precedence flag, manifest, user config,
// then the default name.
func editorExecutable(flag string, m *manifest.Manifest) string {
	switch {
	case flag != "":
		return flag
	case m != nil && m.Editor.Executable != "":
		return m.Editor.Executable
	case config.EditorExecutable() != "":
		return config.EditorExecutable()
	default:
		return editor.DefaultExecutable
	}
}

// applyEditorDefaults turns on editor switches enabled in the user config.
func applyEditorDefaults(m *manifest.Manifest) {
	if config.EditorHeadless() {
		m.Editor.Headless = true
	}
	if config.EditorBuildSolutions() {
		m.Editor.BuildSolutions = true
	}
}

func newEditorRunner(exe string, stdout, stderr io.Writer) *editor.Runner {
	return &editor.Runner{
		Executable: exe,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logger.Named("editor"),
	}
}
