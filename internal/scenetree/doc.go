// Package scenetree materialises a tree of Godot scene nodes as .tscn
// descriptor files. Each node gets its own file at <project>/<path>.tscn and
// instances its direct children through ext_resource references, so a parent
// can only be written once every child file exists. EmitTree walks the tree
// post-order to keep that ordering.
//
// The tree itself is data: Build turns an ordered list of Defs (name, kind,
// parent) into a validated Tree. DefaultDefs returns the four-node layout the
// tool ships with.
package scenetree
