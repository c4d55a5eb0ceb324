package manifest

import (
	"strings"
	"testing"
)

func TestValidateFileValid(t *testing.T) {
	for _, file := range []string{"valid-full.yaml", "valid-minimal.yaml"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
		})
	}
}

func TestValidateFileInvalid(t *testing.T) {
	tests := []struct {
		file     string
		wantPath string
	}{
		{"invalid-missing-name.yaml", ""},
		{"invalid-bad-kind.yaml", "/scenes/nodes/0/kind"},
		{"invalid-unquoted-version.yaml", "/engine/version"},
		{"invalid-unknown-field.yaml", ""},
		{"invalid-bad-extension.yaml", "/assets/0/extensions/0"},
		{"invalid-escaping-dest.yaml", "/assets/0/dest"},
		{"invalid-bracket-node.yaml", "/scenes/nodes/0/name"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected %s to be invalid", tt.file)
			}
			if len(result.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}
			if tt.wantPath == "" {
				return
			}
			for _, issue := range result.Issues {
				if issue.Path == tt.wantPath {
					return
				}
			}
			t.Errorf("no issue at %s, got %+v", tt.wantPath, result.Issues)
		})
	}
}

func TestValidateInvalidYAML(t *testing.T) {
	if _, err := ValidateFile(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidateEmptyDocument(t *testing.T) {
	result, err := Validate([]byte(""))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if result.Valid {
		t.Error("empty manifest should be invalid (name is required)")
	}
}

func TestValidateNonStringKeys(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"integer key", "name: Game\neditor:\n  1: x\n"},
		{"boolean key", "name: Game\nengine:\n  true: x\n"},
		{"nested in list", "name: Game\nassets:\n  - source: models\n    2: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Validate() error = %v, want a validation issue", err)
			}
			if result.Valid {
				t.Error("manifest with an unknown non-string key should be invalid")
			}
		})
	}
}

func TestValidationSummary(t *testing.T) {
	result, err := ValidateFile(testPath("invalid-bad-kind.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile() error: %v", err)
	}
	summary := result.Summary()
	if !strings.HasPrefix(summary, "invalid manifest:") {
		t.Errorf("Summary() = %q", summary)
	}
	if !strings.Contains(summary, "/scenes/nodes/0/kind") {
		t.Errorf("Summary() does not name the failing field: %q", summary)
	}

	ok := &ValidationResult{Valid: true}
	if ok.Summary() != "valid" {
		t.Errorf("Summary() = %q, want valid", ok.Summary())
	}
}

func TestSchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}
