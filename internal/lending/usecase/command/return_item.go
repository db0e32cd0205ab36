package command

import (
	"time"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// ReturnItemCommand represents the command to return one issued item.
type ReturnItemCommand struct {
	TransactionID uint
	ItemID        uint
}

// ReturnItemHandler handles the return item command
type ReturnItemHandler struct {
	store domain.Store
	now   func() time.Time
}

// NewReturnItemHandler creates a new return item handler
func NewReturnItemHandler(store domain.Store) *ReturnItemHandler {
	return &ReturnItemHandler{store: store, now: time.Now}
}

// Handle marks the item Available and resolves its transaction line.
// The transaction closes when this was its last open line. Returning
// against a closed transaction or an already-resolved line fails with
// ErrAlreadyClosed and mutates nothing.
func (h *ReturnItemHandler) Handle(cmd ReturnItemCommand) error {
	return resolveLine(h.store, cmd.TransactionID, cmd.ItemID,
		domain.ResolutionReturned, domain.ItemAvailable, h.now())
}
