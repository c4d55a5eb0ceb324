package scenetree

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in        string
		want      Kind
		godotType string
	}{
		{"root", KindRoot, "Node"},
		{"group-2d", KindGroup2D, "Node2D"},
		{"group-3d", KindGroup3D, "Node3D"},
		{"leaf-control", KindLeafControl, "Control"},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Fatalf("ParseKind(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
		if got.GodotType() != tt.godotType {
			t.Errorf("%v.GodotType() = %q, want %q", got, got.GodotType(), tt.godotType)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	if _, err := ParseKind("sprite"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestUnknownKindString(t *testing.T) {
	k := Kind(42)
	if k.String() != "unknown" {
		t.Errorf("String() = %q, want unknown", k.String())
	}
	if k.GodotType() != "Node" {
		t.Errorf("GodotType() = %q, want Node", k.GodotType())
	}
}
