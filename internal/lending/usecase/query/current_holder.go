package query

import (
	"fmt"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// CurrentHolderHandler answers "who has item X right now".
type CurrentHolderHandler struct {
	store domain.Store
}

// NewCurrentHolderHandler creates a new current holder handler
func NewCurrentHolderHandler(store domain.Store) *CurrentHolderHandler {
	return &CurrentHolderHandler{store: store}
}

// Handle follows item -> open line -> active transaction -> student
// and returns the student's name. The second return is false when no
// active loan references the item (which is not an error). An absent
// item id fails with ErrNotFound.
func (h *CurrentHolderHandler) Handle(itemID uint) (string, bool, error) {
	if _, err := h.store.FindItemByID(itemID); err != nil {
		return "", false, fmt.Errorf("item %d: %w", itemID, err)
	}

	lines, err := h.store.ListLinesByItem(itemID)
	if err != nil {
		return "", false, err
	}
	for _, line := range lines {
		if !line.Open() {
			continue
		}
		txn, err := h.store.FindTransactionByID(line.TransactionID)
		if err != nil {
			return "", false, err
		}
		if txn.Status != domain.TransactionActive {
			continue
		}
		student, err := h.store.FindStudentByID(txn.StudentID)
		if err != nil {
			return "", false, err
		}
		return student.Name, true, nil
	}
	return "", false, nil
}
