package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoadEmbedded(t *testing.T) {
	loader := NewLoader("")
	if loader.Source() != "embedded" {
		t.Errorf("Source() = %q, want embedded", loader.Source())
	}

	file, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Laws["central"]) == 0 {
		t.Fatal("embedded catalog has no central laws")
	}
	if len(file.Templates) == 0 {
		t.Fatal("embedded catalog has no templates")
	}
}

func TestLoaderLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "catalog.yaml")

	yamlContent := `---
laws:
  central:
    - id: rti
      title: RTI Act
      preview: Ask for information
      category: rights
      type: law
      tags: [transparency]
`

	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	file, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	laws := file.Laws["central"]
	if len(laws) != 1 || laws[0].ID != "rti" || laws[0].Tags[0] != "transparency" {
		t.Errorf("Load() = %+v", laws)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/catalog.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
laws:
  central:
    - id: rti
      titel: typo
`))
	if err == nil {
		t.Error("Parse() should reject unknown keys")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Error("Parse(nil) should return error")
	}
}
