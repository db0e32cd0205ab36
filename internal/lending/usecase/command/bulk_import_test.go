package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidosbek/labtrack/internal/lending/domain"
	"github.com/aidosbek/labtrack/internal/lending/repository"
)

func TestBulkImport(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()
	handler := NewBulkImportHandler(store)

	result, err := handler.Handle(BulkImportCommand{Rows: []ImportRow{
		{ComponentName: "Arduino", Quantity: 5},
		{ComponentName: "  ", Quantity: 3},
		{ComponentName: "Widget", Quantity: 0},
		{ComponentName: "Breadboard", Quantity: -2},
		{ComponentName: "Oscilloscope", Quantity: 2, Description: "Bench scope"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.InventoriesCreated)
	assert.Equal(t, 7, result.ItemsCreated)

	t.Run("existing category gains quantity and serials continue", func(t *testing.T) {
		inv, err := store.FindInventoryByName("Arduino")
		require.NoError(t, err)
		assert.Equal(t, 15, inv.TotalQty)

		// Fixtures end at ARD004, so the batch continues from ARD005.
		for _, serial := range []string{"ARD005", "ARD006", "ARD007", "ARD008", "ARD009"} {
			item, err := store.FindItemBySerial(serial)
			require.NoError(t, err, serial)
			assert.Equal(t, domain.ItemAvailable, item.Status)
		}
	})

	t.Run("new category is created with its items", func(t *testing.T) {
		inv, err := store.FindInventoryByName("Oscilloscope")
		require.NoError(t, err)
		assert.Equal(t, 2, inv.TotalQty)
		assert.Equal(t, "Bench scope", inv.Description)

		items, err := store.ListItemsByInventory(inv.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "OSC001", items[0].SerialNumber)
		assert.Equal(t, "OSC002", items[1].SerialNumber)
	})

	t.Run("skipped rows leave no trace", func(t *testing.T) {
		_, err := store.FindInventoryByName("Widget")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.FindInventoryByName("Breadboard")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// itemWriteFailStore fails every CreateItems call, leaving any
// inventory write of the same row behind.
type itemWriteFailStore struct {
	domain.Store
}

func (s *itemWriteFailStore) CreateItems(items []*domain.Item) error {
	return domain.ErrStoreUnavailable
}

func TestBulkImportCountsInventoryOfFailedRow(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewBulkImportHandler(&itemWriteFailStore{Store: store})

	result, err := handler.Handle(BulkImportCommand{Rows: []ImportRow{
		{ComponentName: "Multimeter", Quantity: 3},
	}})
	require.NoError(t, err)

	// The row failed after its inventory write, so the persisted
	// category must be reflected in the counts.
	assert.Equal(t, 1, result.InventoriesCreated)
	assert.Equal(t, 0, result.ItemsCreated)

	inv, err := store.FindInventoryByName("Multimeter")
	require.NoError(t, err)
	assert.Equal(t, 3, inv.TotalQty)

	items, err := store.ListItemsByInventory(inv.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBulkImportReconcilesCaseInsensitively(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()
	handler := NewBulkImportHandler(store)

	result, err := handler.Handle(BulkImportCommand{Rows: []ImportRow{
		{ComponentName: "arduino", Quantity: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, result.InventoriesCreated)
	assert.Equal(t, 1, result.ItemsCreated)

	inv, err := store.FindInventoryByName("Arduino")
	require.NoError(t, err)
	assert.Equal(t, 11, inv.TotalQty)
}
