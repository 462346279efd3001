/*
Package room contains the core logic for the shared virtual room.

This file defines the Catalog: the fixed, server-defined vocabulary of
purchasable item types. The catalog is built once at startup and never
mutated afterwards.
*/
package room

// CatalogEntry describes one purchasable item type.
type CatalogEntry struct {
	// ID is the type identifier referenced by inventory items and room objects.
	ID string `json:"id"`

	// Name is the display name copied onto purchased items.
	Name string `json:"name"`

	// Cost is the price in credits, never negative.
	Cost int `json:"cost"`

	// Color is a 24-bit RGB tint used by clients when rendering the item.
	Color int `json:"color"`
}

// FallbackItemName is used when a room object's type id no longer resolves
// to a catalog entry at pickup time.
const FallbackItemName = "Item"

// Catalog is an immutable, ordered collection of purchasable item types with
// constant-time lookup by id.
type Catalog struct {
	entries []CatalogEntry
	byID    map[string]CatalogEntry
}

// NewCatalog builds a Catalog from the given entries, preserving their order.
func NewCatalog(entries []CatalogEntry) *Catalog {
	byID := make(map[string]CatalogEntry, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
	}

	return &Catalog{
		entries: entries,
		byID:    byID,
	}
}

// DefaultCatalog returns the built-in catalog of furniture item types.
func DefaultCatalog() *Catalog {
	return NewCatalog([]CatalogEntry{
		{ID: "chair_red", Name: "Red Chair", Cost: 5, Color: 0xff4444},
		{ID: "chair_blue", Name: "Blue Chair", Cost: 5, Color: 0x4444ff},
		{ID: "table_wood", Name: "Wooden Table", Cost: 15, Color: 0xaa8866},
		{ID: "plant_green", Name: "Small Plant", Cost: 10, Color: 0x44aa44},
	})
}

// Entries returns the catalog entries in their defined order.
// The returned slice is a copy; callers may not mutate catalog state.
func (c *Catalog) Entries() []CatalogEntry {
	entries := make([]CatalogEntry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Lookup resolves a type id to its catalog entry.
func (c *Catalog) Lookup(id string) (CatalogEntry, bool) {
	entry, ok := c.byID[id]
	return entry, ok
}

// ItemName resolves a type id to its display name, falling back to a
// generic label for unknown types.
func (c *Catalog) ItemName(typeID string) string {
	if entry, ok := c.byID[typeID]; ok {
		return entry.Name
	}
	return FallbackItemName
}
