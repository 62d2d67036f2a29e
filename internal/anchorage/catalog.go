package anchorage

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/anchorages.json
var catalogJSON []byte

// Catalog is the static anchorage reference table. It is built once at
// startup and never mutated; iteration order is the bundled file order.
type Catalog struct {
	entries []Anchorage
	byID    map[string]Anchorage
}

func LoadCatalog() (*Catalog, error) {
	var entries []Anchorage
	if err := json.Unmarshal(catalogJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse anchorage catalog: %w", err)
	}
	return NewCatalog(entries), nil
}

func NewCatalog(entries []Anchorage) *Catalog {
	byID := make(map[string]Anchorage, len(entries))
	for _, a := range entries {
		byID[a.ID] = a
	}
	return &Catalog{entries: entries, byID: byID}
}

func (c *Catalog) All() []Anchorage {
	return c.entries
}

func (c *Catalog) Get(id string) (Anchorage, bool) {
	a, ok := c.byID[id]
	return a, ok
}

func (c *Catalog) Len() int {
	return len(c.entries)
}
