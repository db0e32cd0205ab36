package command

import (
	"errors"
	"strings"

	"github.com/aidosbek/labtrack/internal/lending/domain"
	"github.com/aidosbek/labtrack/pkg/logger"
)

// ImportRow is one row of tabular intake data.
type ImportRow struct {
	ComponentName string `json:"component_name"`
	Quantity      int    `json:"quantity"`
	Description   string `json:"description,omitempty"`
}

// BulkImportCommand represents the command to ingest intake rows.
type BulkImportCommand struct {
	Rows []ImportRow
}

// BulkImportResult aggregates what the import created.
type BulkImportResult struct {
	InventoriesCreated int `json:"inventories_created"`
	ItemsCreated       int `json:"items_created"`
}

// BulkImportHandler handles the bulk import command
type BulkImportHandler struct {
	store domain.Store
}

// NewBulkImportHandler creates a new bulk import handler
func NewBulkImportHandler(store domain.Store) *BulkImportHandler {
	return &BulkImportHandler{store: store}
}

// Handle processes rows in order, row-at-a-time. Each row reconciles
// against inventory by case-insensitive name (incrementing total_qty
// or creating the category), then creates one Available item per
// generated serial. Rows with a blank name or non-positive quantity
// are skipped silently; a row that fails mid-way is logged and skipped
// without rolling back prior rows. A row that created its inventory
// before failing still counts it: the row is persisted either way.
func (h *BulkImportHandler) Handle(cmd BulkImportCommand) (BulkImportResult, error) {
	var result BulkImportResult

	for i, row := range cmd.Rows {
		name := strings.TrimSpace(row.ComponentName)
		if name == "" || row.Quantity <= 0 {
			continue
		}

		created, items, err := h.importRow(name, row.Quantity, strings.TrimSpace(row.Description))
		if created {
			result.InventoriesCreated++
		}
		if err != nil {
			logger.Logger.Warn().
				Err(err).
				Int("row", i).
				Str("component", name).
				Int("quantity", row.Quantity).
				Msg("Bulk import row skipped")
			continue
		}
		result.ItemsCreated += items
	}

	return result, nil
}

func (h *BulkImportHandler) importRow(name string, quantity int, description string) (bool, int, error) {
	createdInventory := false

	inv, err := h.store.FindInventoryByName(name)
	switch {
	case err == nil:
		inv.TotalQty += quantity
		if err := h.store.UpdateInventory(inv); err != nil {
			return false, 0, err
		}
	case errors.Is(err, domain.ErrNotFound):
		inv = &domain.Inventory{Name: name, TotalQty: quantity, Description: description}
		if err := h.store.CreateInventory(inv); err != nil {
			return false, 0, err
		}
		createdInventory = true
	default:
		return false, 0, err
	}

	existing, err := h.store.ListItemsByInventory(inv.ID)
	if err != nil {
		return createdInventory, 0, err
	}
	serials := make([]string, 0, len(existing))
	for _, item := range existing {
		serials = append(serials, item.SerialNumber)
	}

	prefix := domain.SerialPrefix(name)
	items := make([]*domain.Item, 0, quantity)
	for _, serial := range domain.NextSerials(prefix, serials, quantity) {
		items = append(items, &domain.Item{
			SerialNumber: serial,
			Status:       domain.ItemAvailable,
			InventoryID:  inv.ID,
		})
	}
	if err := h.store.CreateItems(items); err != nil {
		return createdInventory, 0, err
	}

	return createdInventory, len(items), nil
}
