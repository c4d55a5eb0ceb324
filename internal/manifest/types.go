package manifest

import (
	"path/filepath"

	"github.com/gdscaffold/gdscaffold/internal/scenetree"
)

// Manifest is the decoded gdscaffold.yaml.
type Manifest struct {
	Name   string        `yaml:"name" json:"name"`
	Output string        `yaml:"output,omitempty" json:"output,omitempty"`
	Engine Engine        `yaml:"engine,omitempty" json:"engine,omitempty"`
	Scenes Scenes        `yaml:"scenes,omitempty" json:"scenes,omitempty"`
	Assets []AssetSource `yaml:"assets,omitempty" json:"assets,omitempty"`
	Extras []Extra       `yaml:"extras,omitempty" json:"extras,omitempty"`
	Editor Editor        `yaml:"editor,omitempty" json:"editor,omitempty"`

	// dir is the directory relative paths are resolved against.
	dir string
}

// Engine holds the project.godot settings.
type Engine struct {
	Version  string `yaml:"version,omitempty" json:"version,omitempty"`
	Renderer string `yaml:"renderer,omitempty" json:"renderer,omitempty"`
	DotNet   bool   `yaml:"dotnet,omitempty" json:"dotnet,omitempty"`
	Icon     string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// Scenes declares the scene tree.
type Scenes struct {
	UIDs  bool      `yaml:"uids,omitempty" json:"uids,omitempty"`
	Nodes []NodeDef `yaml:"nodes,omitempty" json:"nodes,omitempty"`
}

// NodeDef is one scene node. Parent refers to an earlier node by name.
type NodeDef struct {
	Name   string `yaml:"name" json:"name"`
	Kind   string `yaml:"kind" json:"kind"`
	Parent string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
}

// AssetSource is a directory whose matching files are copied into the project.
type AssetSource struct {
	Source     string   `yaml:"source" json:"source"`
	Dest       string   `yaml:"dest,omitempty" json:"dest,omitempty"`
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// Extra is a single file copied into the project root (or Dest).
type Extra struct {
	Source string `yaml:"source" json:"source"`
	Dest   string `yaml:"dest,omitempty" json:"dest,omitempty"`
}

// Editor configures the hand-off to the editor executable.
type Editor struct {
	Executable     string   `yaml:"executable,omitempty" json:"executable,omitempty"`
	Headless       bool     `yaml:"headless,omitempty" json:"headless,omitempty"`
	BuildSolutions bool     `yaml:"build_solutions,omitempty" json:"build_solutions,omitempty"`
	Script         string   `yaml:"script,omitempty" json:"script,omitempty"`
	Args           []string `yaml:"args,omitempty" json:"args,omitempty"`
	Skip           bool     `yaml:"skip,omitempty" json:"skip,omitempty"`
}

// Defaults applied by Parse when a field is left empty.
const (
	DefaultEngineVersion = "4.3"
	DefaultAssetDest     = "assets"
)

// Dir returns the directory relative paths resolve against.
func (m *Manifest) Dir() string { return m.dir }

// SetDir changes the directory relative paths resolve against.
func (m *Manifest) SetDir(dir string) { m.dir = dir }

// Resolve returns p made absolute against the manifest's directory.
// Absolute paths are returned unchanged.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, filepath.FromSlash(p))
}

// ProjectDir returns the resolved output directory of the project.
func (m *Manifest) ProjectDir() string {
	out := m.Output
	if out == "" {
		out = m.Name
	}
	return m.Resolve(out)
}

// TreeDefs converts the node list into scene tree definitions. An empty list
// yields the stock four-node layout.
func (m *Manifest) TreeDefs() []scenetree.Def {
	if len(m.Scenes.Nodes) == 0 {
		return scenetree.DefaultDefs()
	}
	defs := make([]scenetree.Def, len(m.Scenes.Nodes))
	for i, n := range m.Scenes.Nodes {
		defs[i] = scenetree.Def{Name: n.Name, Kind: n.Kind, Parent: n.Parent, Path: n.Path}
	}
	return defs
}

// Tree builds and validates the scene tree.
func (m *Manifest) Tree() (*scenetree.Tree, error) {
	return scenetree.Build(m.TreeDefs())
}

func (m *Manifest) applyDefaults() {
	if m.Engine.Version == "" {
		m.Engine.Version = DefaultEngineVersion
	}
	for i := range m.Assets {
		if m.Assets[i].Dest == "" {
			m.Assets[i].Dest = DefaultAssetDest
		}
	}
}
