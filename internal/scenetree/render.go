package scenetree

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"sync"
	"text/template"
)

// FormatVersion is the text scene format understood by Godot 4.
const FormatVersion = 3

//go:embed templates/scene.tscn.tmpl
var sceneTemplate string

var (
	parsedScene *template.Template
	parseOnce   sync.Once
	parseErr    error
)

// sceneData holds the template variables for one descriptor.
type sceneData struct {
	LoadSteps int
	Format    int
	UID       string
	Name      string
	Type      string
	Refs      []extRef
}

// extRef binds a synthetic id to a child descriptor.
type extRef struct {
	ID   string
	UID  string
	Path string
	Name string
}

// RenderOptions tweaks descriptor output.
type RenderOptions struct {
	// UIDs adds deterministic uid:// identifiers to the header and to every
	// ext_resource line.
	UIDs bool
}

// ExtResourceID returns the synthetic identifier of the i-th child
// reference (1-based) inside a descriptor.
func ExtResourceID(i int) string {
	return "ext_resource_" + strconv.Itoa(i)
}

// Render builds the descriptor content for n: a header whose load_steps is
// one plus the number of children, one ext_resource per child, the node
// declaration, then one instance per child bound to its ext_resource id.
func Render(n *Node, opts RenderOptions) ([]byte, error) {
	tmpl, err := getTemplate()
	if err != nil {
		return nil, err
	}

	data := sceneData{
		LoadSteps: 1 + len(n.Children),
		Format:    FormatVersion,
		Name:      n.Name,
		Type:      n.Kind.GodotType(),
	}
	if opts.UIDs {
		data.UID = UID(n.ResPath())
	}

	for i, c := range n.Children {
		ref := extRef{
			ID:   ExtResourceID(i + 1),
			Path: c.ResPath(),
			Name: c.Name,
		}
		if opts.UIDs {
			ref.UID = UID(c.ResPath())
		}
		data.Refs = append(data.Refs, ref)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering scene %s: %w", n.Name, err)
	}
	return buf.Bytes(), nil
}

func getTemplate() (*template.Template, error) {
	parseOnce.Do(func() {
		parsedScene, parseErr = template.New("scene.tscn").Parse(sceneTemplate)
		if parseErr != nil {
			parseErr = fmt.Errorf("parsing scene template: %w", parseErr)
		}
	})
	return parsedScene, parseErr
}
