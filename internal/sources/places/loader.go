package places

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wanderly-app/pollsvc/internal/domain"
)

// Loader handles loading and parsing of the places catalog file
type Loader struct {
	filePath string
}

// NewLoader creates a new catalog loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses places.yaml into domain places. Entries without an
// id or name are rejected, as are duplicate ids.
func (l *Loader) Load() ([]domain.Place, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read places file: %w", err)
	}
	return Parse(data)
}

// Parse converts raw catalog YAML into domain places.
func Parse(data []byte) ([]domain.Place, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse places yaml: %w", err)
	}

	if len(file.Places) == 0 {
		return nil, fmt.Errorf("no places found in catalog")
	}

	seen := make(map[string]bool, len(file.Places))
	result := make([]domain.Place, 0, len(file.Places))
	for i, entry := range file.Places {
		id := strings.TrimSpace(entry.ID)
		name := strings.TrimSpace(entry.Name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("catalog entry %d is missing id or name", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate place id %q in catalog", id)
		}
		seen[id] = true
		result = append(result, domain.Place{
			ID:    id,
			Name:  name,
			Image: entry.Image,
			City:  entry.City,
		})
	}

	return result, nil
}
