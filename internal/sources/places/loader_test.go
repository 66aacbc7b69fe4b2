package places

import (
	"os"
	"path/filepath"
	"testing"
)

const validCatalog = `places:
  - id: p1
    name: Fushimi Inari
    image: https://img.example.com/inari.jpg
    city: Kyoto
  - id: p2
    name: Dotonbori
    city: Osaka
`

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "places.yaml")

	if err := os.WriteFile(yamlPath, []byte(validCatalog), 0o644); err != nil {
		t.Fatalf("failed to create test YAML file: %v", err)
	}

	loaded, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() = %d places, want 2", len(loaded))
	}
	if loaded[0].ID != "p1" || loaded[0].Name != "Fushimi Inari" || loaded[0].City != "Kyoto" {
		t.Errorf("Load()[0] = %+v", loaded[0])
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	_, err := NewLoader("/nonexistent/places.yaml").Load()
	if err == nil {
		t.Error("Load() on missing file = nil error")
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", `{{{`},
		{"empty catalog", `places: []`},
		{"missing id", "places:\n  - name: Somewhere\n"},
		{"missing name", "places:\n  - id: p1\n"},
		{"duplicate id", "places:\n  - id: p1\n    name: A\n  - id: p1\n    name: B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() = nil error, want failure")
			}
		})
	}
}

func TestCatalogResolve(t *testing.T) {
	loaded, err := Parse([]byte(validCatalog))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	catalog := NewCatalog()
	catalog.Replace(loaded)

	resolved, err := catalog.Resolve([]string{"p2", "p1"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(resolved) != 2 || resolved[0].ID != "p2" || resolved[1].ID != "p1" {
		t.Errorf("Resolve() did not preserve requested order: %+v", resolved)
	}

	if _, err := catalog.Resolve([]string{"p1", "p99"}); err == nil {
		t.Error("Resolve() with unknown id = nil error")
	}
}

func TestCatalogReplaceSwapsContents(t *testing.T) {
	loaded, _ := Parse([]byte(validCatalog))

	catalog := NewCatalog()
	catalog.Replace(loaded)
	if catalog.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", catalog.Count())
	}

	catalog.Replace(loaded[:1])
	if catalog.Count() != 1 {
		t.Errorf("Count() after Replace = %d, want 1", catalog.Count())
	}
	if _, err := catalog.Resolve([]string{"p2"}); err == nil {
		t.Error("Resolve() found a place removed by Replace()")
	}
}
