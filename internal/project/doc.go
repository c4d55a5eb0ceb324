// Package project writes the project.godot manifest that names the root
// scene as the entry point. The file is regenerated wholesale on every run.
package project
