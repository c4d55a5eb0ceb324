// Package editor hands a generated project to the Godot editor executable.
// The Runner builds the fixed command line (--editor --path <dir> plus the
// optional --headless, --build-solutions and --script flags), streams the
// editor's output, and reports its exit code without treating a non-zero
// exit as a failure of the generation pass.
package editor
