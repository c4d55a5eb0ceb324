// Package config manages user-level settings stored at
// ~/.gdscaffold/config.yaml. Every key can be overridden through the
// environment with the GDSCAFFOLD_ prefix, dots becoming underscores
// (GDSCAFFOLD_EDITOR_EXECUTABLE for editor.executable).
package config
