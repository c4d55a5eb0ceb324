// Package cli defines the Cobra command tree for the gdscaffold CLI. Each
// file in this package registers one top-level command (generate, tree,
// doctor, etc.) with the root command. Command implementations delegate to
// internal packages for the generation logic and only handle flag parsing,
// manifest lookup and output formatting.
package cli
