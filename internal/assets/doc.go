// Package assets copies source files into a generated project. One Copier
// handles every source: a recursive walk with an optional, case-insensitive
// extension filter that keeps each file's path relative to its source root.
// A missing source is a configuration problem, not a failed write.
package assets
