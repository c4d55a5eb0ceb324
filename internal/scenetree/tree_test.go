package scenetree

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildDefault(t *testing.T) {
	tree, err := Build(DefaultDefs())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if tree.Root.Name != "Node4D" {
		t.Errorf("Root = %q, want Node4D", tree.Root.Name)
	}
	if tree.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tree.Len())
	}

	wantPaths := map[string]string{
		"Node4D":  "Node4D",
		"Node2D":  "Node4D/Node2D",
		"Control": "Node4D/Node2D/Control",
		"Node3D":  "Node4D/Node3D",
	}
	for name, want := range wantPaths {
		n, ok := tree.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		if n.Path != want {
			t.Errorf("%s.Path = %q, want %q", name, n.Path, want)
		}
	}

	control, _ := tree.Lookup("Control")
	if control.ResPath() != "res://Node4D/Node2D/Control.tscn" {
		t.Errorf("ResPath() = %q", control.ResPath())
	}
	if control.Parent.Name != "Node2D" {
		t.Errorf("Control.Parent = %q, want Node2D", control.Parent.Name)
	}
}

func TestPostOrder(t *testing.T) {
	tree := MustBuild(DefaultDefs())

	var got []string
	for _, n := range tree.PostOrder() {
		got = append(got, n.Name)
	}

	want := []string{"Control", "Node2D", "Node3D", "Node4D"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PostOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestPostOrderDeepTree(t *testing.T) {
	tree := MustBuild([]Def{
		{Name: "World", Kind: "root"},
		{Name: "Level", Kind: "group-3d", Parent: "World"},
		{Name: "Room", Kind: "group-3d", Parent: "Level"},
		{Name: "Props", Kind: "group-3d", Parent: "Room"},
		{Name: "HUD", Kind: "group-2d", Parent: "World"},
		{Name: "Health", Kind: "leaf-control", Parent: "HUD"},
		{Name: "Ammo", Kind: "leaf-control", Parent: "HUD"},
	})

	var got []string
	for _, n := range tree.PostOrder() {
		got = append(got, n.Path)
	}

	want := []string{
		"World/Level/Room/Props",
		"World/Level/Room",
		"World/Level",
		"World/HUD/Health",
		"World/HUD/Ammo",
		"World/HUD",
		"World",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PostOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildExplicitPaths(t *testing.T) {
	tree, err := Build([]Def{
		{Name: "root", Kind: "root", Path: "root"},
		{Name: "A", Kind: "group-2d", Parent: "root", Path: "A"},
		{Name: "B", Kind: "group-3d", Parent: "root", Path: "B"},
		{Name: "C", Kind: "leaf-control", Parent: "B", Path: "B/C"},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var got []string
	for _, n := range tree.Nodes() {
		got = append(got, n.FilePath())
	}
	want := []string{"root.tscn", "A.tscn", "B.tscn", "B/C.tscn"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("file paths mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		defs    []Def
		wantErr string
	}{
		{
			name:    "empty",
			defs:    nil,
			wantErr: "no nodes",
		},
		{
			name: "two roots",
			defs: []Def{
				{Name: "A", Kind: "root"},
				{Name: "B", Kind: "root"},
			},
			wantErr: "already the root",
		},
		{
			name: "no root",
			defs: []Def{
				{Name: "A", Kind: "group-2d", Parent: "A"},
			},
			wantErr: "not defined before",
		},
		{
			name: "duplicate name",
			defs: []Def{
				{Name: "A", Kind: "root"},
				{Name: "A", Kind: "group-2d", Parent: "A"},
			},
			wantErr: "more than once",
		},
		{
			name: "parent defined later",
			defs: []Def{
				{Name: "A", Kind: "root"},
				{Name: "C", Kind: "leaf-control", Parent: "B"},
				{Name: "B", Kind: "group-2d", Parent: "A"},
			},
			wantErr: "not defined before",
		},
		{
			name: "unknown kind",
			defs: []Def{
				{Name: "A", Kind: "sprite"},
			},
			wantErr: "unknown node kind",
		},
		{
			name: "bad name",
			defs: []Def{
				{Name: "a/b", Kind: "root"},
			},
			wantErr: "contains one of",
		},
		{
			name: "name that opens a new heading",
			defs: []Def{
				{Name: "Root", Kind: "root"},
				{Name: "Evil]\n[node name=X", Kind: "group-2d", Parent: "Root"},
			},
			wantErr: "control character",
		},
		{
			name: "bracket in name",
			defs: []Def{
				{Name: "A[1]", Kind: "root"},
			},
			wantErr: "control character",
		},
		{
			name: "tab in name",
			defs: []Def{
				{Name: "A\tB", Kind: "root"},
			},
			wantErr: "control character",
		},
		{
			name: "newline in path",
			defs: []Def{
				{Name: "A", Kind: "root", Path: "scenes/A\nB"},
			},
			wantErr: "invalid segment",
		},
		{
			name: "bracket in path",
			defs: []Def{
				{Name: "A", Kind: "root", Path: "scenes]/A"},
			},
			wantErr: "invalid segment",
		},
		{
			name: "empty name",
			defs: []Def{
				{Name: "  ", Kind: "root"},
			},
			wantErr: "empty",
		},
		{
			name: "absolute path",
			defs: []Def{
				{Name: "A", Kind: "root", Path: "/etc/A"},
			},
			wantErr: "relative",
		},
		{
			name: "escaping path",
			defs: []Def{
				{Name: "A", Kind: "root", Path: "../A"},
			},
			wantErr: "invalid segment",
		},
		{
			name: "unclean path",
			defs: []Def{
				{Name: "A", Kind: "root", Path: "x//A"},
			},
			wantErr: "not clean",
		},
		{
			name: "backslash path",
			defs: []Def{
				{Name: "A", Kind: "root", Path: `x\A`},
			},
			wantErr: "forward slashes",
		},
		{
			name: "duplicate path",
			defs: []Def{
				{Name: "A", Kind: "root", Path: "scenes/A"},
				{Name: "B", Kind: "group-2d", Parent: "A", Path: "scenes/A"},
			},
			wantErr: "both use path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.defs)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildEmptyIsSentinel(t *testing.T) {
	_, err := Build([]Def{})
	if !errors.Is(err, ErrEmptyTree) {
		t.Errorf("Build(empty) = %v, want ErrEmptyTree", err)
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild did not panic on invalid defs")
		}
	}()
	MustBuild(nil)
}

func TestNodesIsACopy(t *testing.T) {
	tree := MustBuild(DefaultDefs())
	nodes := tree.Nodes()
	nodes[0] = nil
	if tree.Nodes()[0] == nil {
		t.Error("Nodes() exposed the internal slice")
	}
}
