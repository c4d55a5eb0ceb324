package scenetree

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"
)

// Extension is the file suffix of every scene descriptor.
const Extension = ".tscn"

// Def declares one node. Parent names an earlier Def; the root has none.
// Path is optional and defaults to "<parent path>/<name>".
type Def struct {
	Name   string
	Kind   string
	Parent string
	Path   string
}

// Node is one scene in the built tree.
type Node struct {
	Name     string
	Kind     Kind
	Path     string // slash-separated, relative to the project dir, no extension
	Parent   *Node
	Children []*Node
}

// ResPath returns the node's descriptor address inside the project,
// e.g. "res://Node4D/Node2D.tscn".
func (n *Node) ResPath() string {
	return "res://" + n.Path + Extension
}

// FilePath returns the descriptor's slash-separated path relative to the
// project dir, e.g. "Node4D/Node2D.tscn".
func (n *Node) FilePath() string {
	return n.Path + Extension
}

// Tree is a validated scene hierarchy.
type Tree struct {
	Root   *Node
	nodes  []*Node
	byName map[string]*Node
}

// ErrEmptyTree is returned by Build when no nodes are defined.
var ErrEmptyTree = errors.New("scene tree has no nodes")

// invalidNameChars are rejected in node names. The engine refuses most of
// them and '"' would break the descriptor quoting.
const invalidNameChars = `./:@%"\`

// sectionChars open and close descriptor headings; with control characters
// they are rejected in names and paths so every value stays on its line.
const sectionChars = "[]"

// Build validates defs and links them into a Tree. Defs are processed in
// order and a parent must be declared before its children.
func Build(defs []Def) (*Tree, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyTree
	}

	t := &Tree{byName: make(map[string]*Node, len(defs))}
	paths := make(map[string]string, len(defs))

	for i, d := range defs {
		if err := validateName(d.Name); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if _, dup := t.byName[d.Name]; dup {
			return nil, fmt.Errorf("node %q is defined more than once", d.Name)
		}

		kind, err := ParseKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", d.Name, err)
		}

		n := &Node{Name: d.Name, Kind: kind}

		if d.Parent == "" {
			if t.Root != nil {
				return nil, fmt.Errorf("node %q has no parent but %q is already the root", d.Name, t.Root.Name)
			}
			t.Root = n
		} else {
			parent, ok := t.byName[d.Parent]
			if !ok {
				return nil, fmt.Errorf("node %q: parent %q is not defined before it", d.Name, d.Parent)
			}
			n.Parent = parent
			parent.Children = append(parent.Children, n)
		}

		n.Path = d.Path
		if n.Path == "" {
			n.Path = derivePath(n)
		}
		if err := validatePath(n.Path); err != nil {
			return nil, fmt.Errorf("node %q: %w", d.Name, err)
		}
		if other, dup := paths[n.Path]; dup {
			return nil, fmt.Errorf("nodes %q and %q both use path %q", other, d.Name, n.Path)
		}
		paths[n.Path] = d.Name

		t.byName[d.Name] = n
		t.nodes = append(t.nodes, n)
	}

	if t.Root == nil {
		return nil, errors.New("scene tree has no root node (a node without a parent)")
	}
	return t, nil
}

// MustBuild is Build for trees known to be valid; it panics on error.
func MustBuild(defs []Def) *Tree {
	t, err := Build(defs)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultDefs returns the stock layout: a root Node with a 2D branch holding
// a Control and a 3D branch.
func DefaultDefs() []Def {
	return []Def{
		{Name: "Node4D", Kind: "root"},
		{Name: "Node2D", Kind: "group-2d", Parent: "Node4D"},
		{Name: "Control", Kind: "leaf-control", Parent: "Node2D"},
		{Name: "Node3D", Kind: "group-3d", Parent: "Node4D"},
	}
}

// Nodes returns the nodes in definition order.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Lookup finds a node by name.
func (t *Tree) Lookup(name string) (*Node, bool) {
	n, ok := t.byName[name]
	return n, ok
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Walk calls fn for every node in post-order: children (in insertion
// order) before their parent, the root last. The first error stops the walk.
func (t *Tree) Walk(fn func(*Node) error) error {
	return walk(t.Root, fn)
}

func walk(n *Node, fn func(*Node) error) error {
	for _, c := range n.Children {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return fn(n)
}

// PostOrder returns the emission order.
func (t *Tree) PostOrder() []*Node {
	out := make([]*Node, 0, len(t.nodes))
	_ = t.Walk(func(n *Node) error {
		out = append(out, n)
		return nil
	})
	return out
}

func derivePath(n *Node) string {
	if n.Parent == nil {
		return n.Name
	}
	return n.Parent.Path + "/" + n.Name
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("node name is empty")
	}
	if strings.ContainsAny(name, invalidNameChars) {
		return fmt.Errorf("node name %q contains one of %q", name, invalidNameChars)
	}
	if hasUnsafeRune(name) {
		return fmt.Errorf("node name %q contains a control character or one of %q", name, sectionChars)
	}
	return nil
}

func hasUnsafeRune(s string) bool {
	return strings.ContainsAny(s, sectionChars) || strings.IndexFunc(s, unicode.IsControl) >= 0
}

func validatePath(p string) error {
	if strings.Contains(p, `\`) {
		return fmt.Errorf("path %q must use forward slashes", p)
	}
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("path %q must be relative to the project", p)
	}
	if path.Clean(p) != p {
		return fmt.Errorf("path %q is not clean (want %q)", p, path.Clean(p))
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("path %q has an invalid segment %q", p, seg)
		}
		if strings.ContainsAny(seg, `:"`) || hasUnsafeRune(seg) {
			return fmt.Errorf("path %q has an invalid segment %q", p, seg)
		}
	}
	return nil
}
