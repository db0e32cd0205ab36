package command

import (
	"fmt"
	"time"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// IssueItemsCommand represents the command to lend items to a student.
// Items can be named by id or by serial number; serials resolve
// case-insensitively against the store and join ItemIDs.
// AcknowledgeDamaged is the explicit override for issuing an item that
// is currently marked Damaged.
type IssueItemsCommand struct {
	StudentID          uint
	ItemIDs            []uint
	Serials            []string
	IssuerID           *uint
	AcknowledgeDamaged bool
}

// IssueItemsHandler handles the issue items command
type IssueItemsHandler struct {
	store domain.Store
	now   func() time.Time
}

// NewIssueItemsHandler creates a new issue items handler
func NewIssueItemsHandler(store domain.Store) *IssueItemsHandler {
	return &IssueItemsHandler{store: store, now: time.Now}
}

// Handle resolves serials, validates every requested item, then
// creates one Active transaction with one line per item and marks the
// items Issued. An item listed twice (by id, serial, or both) fails
// validation: an item never holds more than one open line. Validation
// happens before any write so a rejected request mutates nothing.
// Returns the new transaction id.
func (h *IssueItemsHandler) Handle(cmd IssueItemsCommand) (uint, error) {
	itemIDs := append([]uint{}, cmd.ItemIDs...)
	for _, serial := range cmd.Serials {
		item, err := h.store.FindItemBySerial(serial)
		if err != nil {
			return 0, fmt.Errorf("serial %s: %w", serial, err)
		}
		itemIDs = append(itemIDs, item.ID)
	}
	if len(itemIDs) == 0 {
		return 0, fmt.Errorf("%w: no items to issue", domain.ErrValidation)
	}

	seen := make(map[uint]struct{}, len(itemIDs))
	for _, itemID := range itemIDs {
		if _, dup := seen[itemID]; dup {
			return 0, fmt.Errorf("%w: item %d listed more than once", domain.ErrValidation, itemID)
		}
		seen[itemID] = struct{}{}
	}

	if _, err := h.store.FindStudentByID(cmd.StudentID); err != nil {
		return 0, fmt.Errorf("student %d: %w", cmd.StudentID, err)
	}
	if cmd.IssuerID != nil {
		if _, err := h.store.FindStaffByID(*cmd.IssuerID); err != nil {
			return 0, fmt.Errorf("issuer %d: %w", *cmd.IssuerID, err)
		}
	}

	items := make([]*domain.Item, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := h.store.FindItemByID(itemID)
		if err != nil {
			return 0, fmt.Errorf("item %d: %w", itemID, err)
		}
		switch item.Status {
		case domain.ItemIssued:
			return 0, fmt.Errorf("%s: %w", item.SerialNumber, domain.ErrAlreadyIssued)
		case domain.ItemDamaged:
			if !cmd.AcknowledgeDamaged {
				return 0, fmt.Errorf("%s: %w", item.SerialNumber, domain.ErrDamagedConfirmationRequired)
			}
		}
		items = append(items, item)
	}

	txn := &domain.Transaction{
		StudentID: cmd.StudentID,
		IssuerID:  cmd.IssuerID,
		Status:    domain.TransactionActive,
		IssueDate: h.now(),
	}
	if err := h.store.CreateTransaction(txn); err != nil {
		return 0, err
	}

	for _, item := range items {
		line := &domain.TransactionLine{
			TransactionID: txn.ID,
			ItemID:        item.ID,
		}
		if err := h.store.CreateTransactionLine(line); err != nil {
			return 0, err
		}
		if err := h.store.UpdateItemStatus(item.ID, domain.ItemIssued); err != nil {
			return 0, err
		}
	}

	return txn.ID, nil
}
