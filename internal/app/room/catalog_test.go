package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogEntries(t *testing.T) {
	catalog := DefaultCatalog()

	entries := catalog.Entries()
	require.Len(t, entries, 4)

	// order is part of the contract: clients render the shop in this order
	assert.Equal(t, "chair_red", entries[0].ID)
	assert.Equal(t, "chair_blue", entries[1].ID)
	assert.Equal(t, "table_wood", entries[2].ID)
	assert.Equal(t, "plant_green", entries[3].ID)

	for _, entry := range entries {
		assert.NotEmpty(t, entry.Name)
		assert.GreaterOrEqual(t, entry.Cost, 0)
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()

	entry, ok := catalog.Lookup("chair_red")
	require.True(t, ok)
	assert.Equal(t, "Red Chair", entry.Name)
	assert.Equal(t, 5, entry.Cost)

	_, ok = catalog.Lookup("golden_throne")
	assert.False(t, ok)
}

func TestCatalogItemNameFallback(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, "Wooden Table", catalog.ItemName("table_wood"))
	assert.Equal(t, FallbackItemName, catalog.ItemName("retired_type"))
}

func TestCatalogEntriesReturnsCopy(t *testing.T) {
	catalog := DefaultCatalog()

	entries := catalog.Entries()
	entries[0].Name = "Tampered"

	assert.Equal(t, "Red Chair", catalog.Entries()[0].Name)
}
