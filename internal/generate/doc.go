// Package generate runs one generation pass: it creates the project
// directory, writes project.godot, copies assets and extra files, emits the
// scene tree and finally hands the project to the editor.
//
// Configuration problems with optional inputs (a missing asset folder, a
// missing editor) are collected as warnings on the Report. Filesystem write
// failures abort the pass with a *faults.IOError. A pass is idempotent, so
// partial output from a failed pass is repaired by running it again.
package generate
