package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gdscaffold/gdscaffold/internal/branding"
	"github.com/gdscaffold/gdscaffold/internal/platform"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the tool.
const (
	KeyEditorExecutable     = "editor.executable"
	KeyEditorHeadless       = "editor.headless"
	KeyEditorBuildSolutions = "editor.build_solutions"
	KeyManifestMarker       = "manifest.marker"
)

var defaults = map[string]any{
	KeyEditorExecutable:     "",
	KeyEditorHeadless:       false,
	KeyEditorBuildSolutions: false,
	KeyManifestMarker:       branding.ManifestFile(),
}

var boolKeys = map[string]bool{
	KeyEditorHeadless:       true,
	KeyEditorBuildSolutions: true,
}

// Keys returns every known key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Known reports whether key is a recognised setting.
func Known(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Dir returns the path to the config directory (~/.gdscaffold/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.gdscaffold/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// List returns every known key with its effective value.
func List() map[string]string {
	out := make(map[string]string, len(defaults))
	for _, k := range Keys() {
		out[k] = viper.GetString(k)
	}
	return out
}

// EditorExecutable returns the configured editor, or "" when unset.
func EditorExecutable() string { return viper.GetString(KeyEditorExecutable) }

// EditorHeadless reports whether the editor should run without a window.
func EditorHeadless() bool { return viper.GetBool(KeyEditorHeadless) }

// EditorBuildSolutions reports whether C# solutions are built on open.
func EditorBuildSolutions() bool { return viper.GetBool(KeyEditorBuildSolutions) }

// ManifestMarker returns the manifest file name searched for upward.
func ManifestMarker() string { return viper.GetString(KeyManifestMarker) }

// Set validates and writes a config key-value pair, then saves the config
// file with owner-only permissions.
func Set(key, value string) error {
	if !Known(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}

	var v any = value
	if boolKeys[key] {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		v = b
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, v)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return platform.Chmod(configFile, 0600)
}
