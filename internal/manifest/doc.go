// Package manifest loads gdscaffold.yaml, the declarative description of a
// generation run: project name and engine settings, the scene tree as an
// ordered list of node definitions, asset sources, extra files and editor
// options. Files are validated against an embedded JSON Schema before they
// are decoded, so a bad manifest is reported with field-level issues.
package manifest
