package scenetree

import (
	"fmt"
	"strings"
)

// Kind enumerates the structural role of a node in the scene tree.
type Kind int

const (
	KindRoot        Kind = iota // top-level scene, plain Node
	KindGroup2D                 // 2D container
	KindGroup3D                 // 3D container
	KindLeafControl             // UI leaf
)

var kindNames = map[Kind]string{
	KindRoot:        "root",
	KindGroup2D:     "group-2d",
	KindGroup3D:     "group-3d",
	KindLeafControl: "leaf-control",
}

var godotTypes = map[Kind]string{
	KindRoot:        "Node",
	KindGroup2D:     "Node2D",
	KindGroup3D:     "Node3D",
	KindLeafControl: "Control",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// GodotType returns the engine class name written into the node declaration.
func (k Kind) GodotType() string {
	if t, ok := godotTypes[k]; ok {
		return t
	}
	return "Node"
}

// ParseKind maps a kind name (as written in manifests) to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q: valid kinds are %s", s, strings.Join(KindNames(), ", "))
}

// KindNames returns the valid kind names in declaration order.
func KindNames() []string {
	return []string{
		KindRoot.String(),
		KindGroup2D.String(),
		KindGroup3D.String(),
		KindLeafControl.String(),
	}
}
