package query

import (
	"strings"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// SearchItemsQuery carries the free-text term and the optional
// equality filters of the inventory browser.
type SearchItemsQuery struct {
	Query  string
	Status string
	Course string
}

// SearchItemsHandler filters the item set for the inventory browser.
type SearchItemsHandler struct {
	store domain.Store
}

// NewSearchItemsHandler creates a new search items handler
func NewSearchItemsHandler(store domain.Store) *SearchItemsHandler {
	return &SearchItemsHandler{store: store}
}

// Handle matches the term case-insensitively as a substring of the
// serial number or the component name, then narrows by the status and
// course filters. An empty term with no filters returns every item.
func (h *SearchItemsHandler) Handle(q SearchItemsQuery) ([]domain.Item, error) {
	items, err := h.store.ListItems()
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(q.Query))
	out := []domain.Item{}
	for _, item := range items {
		componentName := ""
		course := ""
		if item.Inventory != nil {
			componentName = item.Inventory.Name
			course = item.Inventory.Course
		}

		if term != "" &&
			!strings.Contains(strings.ToLower(item.SerialNumber), term) &&
			!strings.Contains(strings.ToLower(componentName), term) {
			continue
		}
		if q.Status != "" && item.Status != q.Status {
			continue
		}
		if q.Course != "" && course != q.Course {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
