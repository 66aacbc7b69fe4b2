package places

// CatalogFile represents the top-level structure of places.yaml
type CatalogFile struct {
	Places []PlaceEntry `yaml:"places"`
}

// PlaceEntry contains the catalog properties of one place
type PlaceEntry struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Image string `yaml:"image,omitempty"`
	City  string `yaml:"city,omitempty"`
}
