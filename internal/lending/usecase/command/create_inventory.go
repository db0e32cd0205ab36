package command

import (
	"fmt"
	"strings"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// CreateInventoryCommand represents the command to add an equipment
// category by hand (the bulk importer is the other intake path).
type CreateInventoryCommand struct {
	Name        string
	TotalQty    int
	Course      string
	Description string
}

// CreateInventoryHandler handles the create inventory command
type CreateInventoryHandler struct {
	store domain.Store
}

// NewCreateInventoryHandler creates a new create inventory handler
func NewCreateInventoryHandler(store domain.Store) *CreateInventoryHandler {
	return &CreateInventoryHandler{store: store}
}

// Handle validates and inserts the category. Names are unique
// case-insensitively; a collision surfaces as ErrDuplicateKey.
func (h *CreateInventoryHandler) Handle(cmd CreateInventoryCommand) (*domain.Inventory, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if cmd.TotalQty < 0 {
		return nil, fmt.Errorf("%w: total_qty cannot be negative", domain.ErrValidation)
	}

	inv := &domain.Inventory{
		Name:        name,
		TotalQty:    cmd.TotalQty,
		Course:      strings.TrimSpace(cmd.Course),
		Description: strings.TrimSpace(cmd.Description),
	}
	if err := h.store.CreateInventory(inv); err != nil {
		return nil, err
	}
	return inv, nil
}
