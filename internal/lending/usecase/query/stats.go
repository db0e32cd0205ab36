package query

import (
	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// ComponentStats tallies one equipment category for the dashboard
// table and charts.
type ComponentStats struct {
	InventoryID uint   `json:"inventory_id"`
	Name        string `json:"name"`
	Course      string `json:"course,omitempty"`
	TotalQty    int    `json:"total_qty"`
	Available   int    `json:"available"`
	Issued      int    `json:"issued"`
	Damaged     int    `json:"damaged"`
}

// StatsHandler computes per-category status counts.
type StatsHandler struct {
	store domain.Store
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(store domain.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Handle counts item statuses per category. TotalQty is the cumulative
// intake counter, so Available+Issued+Damaged need not add up to it.
func (h *StatsHandler) Handle() ([]ComponentStats, error) {
	invs, err := h.store.ListInventories()
	if err != nil {
		return nil, err
	}

	stats := make([]ComponentStats, 0, len(invs))
	for _, inv := range invs {
		items, err := h.store.ListItemsByInventory(inv.ID)
		if err != nil {
			return nil, err
		}
		cs := ComponentStats{
			InventoryID: inv.ID,
			Name:        inv.Name,
			Course:      inv.Course,
			TotalQty:    inv.TotalQty,
		}
		for _, item := range items {
			switch item.Status {
			case domain.ItemAvailable:
				cs.Available++
			case domain.ItemIssued:
				cs.Issued++
			case domain.ItemDamaged:
				cs.Damaged++
			}
		}
		stats = append(stats, cs)
	}
	return stats, nil
}
