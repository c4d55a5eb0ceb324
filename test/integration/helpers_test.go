//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // HOME with ~/.gdscaffold/config.yaml
	WorkspaceDir string // holds gdscaffold.yaml and the asset sources
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so user config never leaks in. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:      t.TempDir(),
		WorkspaceDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	return env
}

// setupWorkspace writes a manifest plus the asset folder and extra files
// it refers to.
func setupWorkspace(t *testing.T, dir, manifest string) string {
	t.Helper()

	writeFile(t, filepath.Join(dir, "GameFiles/Models/ship.blend"), "blend-ship")
	writeFile(t, filepath.Join(dir, "GameFiles/Models/hull/plate.blend"), "blend-plate")
	writeFile(t, filepath.Join(dir, "GameFiles/Models/ship.blend1"), "backup")
	writeFile(t, filepath.Join(dir, "GameFiles/Models/.git/HEAD"), "ref: main")
	writeFile(t, filepath.Join(dir, "scene_config.json"), `{"root":"Node4D"}`)
	writeFile(t, filepath.Join(dir, "EditorScript.gd"), "@tool\nextends EditorScript\n")

	path := filepath.Join(dir, "gdscaffold.yaml")
	writeFile(t, path, manifest)
	return path
}

// fakeEditor writes a shell script that records its arguments to argsFile.
func fakeEditor(t *testing.T, argsFile string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake editor is a shell script")
	}
	path := filepath.Join(t.TempDir(), "godot")
	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--version\" ]; then echo 4.4.1.stable.official; exit 0; fi\n" +
		"echo \"$@\" > '" + argsFile + "'\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns a file's content, failing the test if it is missing.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
