package places

import (
	"fmt"
	"sync"

	"github.com/wanderly-app/pollsvc/internal/domain"
)

// Catalog is the in-memory view of the places catalog. Folder creation
// resolves selected place ids against it and stores copies, so later catalog
// edits never alter historical poll options.
type Catalog struct {
	mu     sync.RWMutex
	byID   map[string]domain.Place
	sorted []domain.Place
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]domain.Place)}
}

// Replace swaps the full catalog contents, keeping file order.
func (c *Catalog) Replace(places []domain.Place) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[string]domain.Place, len(places))
	c.sorted = append([]domain.Place(nil), places...)
	for _, p := range places {
		c.byID[p.ID] = p
	}
}

// All returns the catalog places in file order.
func (c *Catalog) All() []domain.Place {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]domain.Place(nil), c.sorted...)
}

// Count returns the number of places in the catalog.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.sorted)
}

// Resolve maps place ids to catalog snapshots, preserving the requested
// order. An unknown id fails the whole resolution.
func (c *Catalog) Resolve(ids []string) ([]domain.Place, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]domain.Place, 0, len(ids))
	for _, id := range ids {
		place, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown place id %q", id)
		}
		result = append(result, place)
	}
	return result, nil
}
