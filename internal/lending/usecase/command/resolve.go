package command

import (
	"fmt"
	"time"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// resolveLine is the shared path of return and damage report: it
// resolves the line for itemID inside transactionID, moves the item to
// itemStatus, and closes the transaction once no open lines remain.
// Only this file and issue_items.go ever write Item.status or
// Transaction.status.
func resolveLine(store domain.Store, transactionID, itemID uint, resolution, itemStatus string, now time.Time) error {
	txn, err := store.FindTransactionByID(transactionID)
	if err != nil {
		return fmt.Errorf("transaction %d: %w", transactionID, err)
	}
	if txn.IsClosed() {
		return fmt.Errorf("transaction %d: %w", transactionID, domain.ErrAlreadyClosed)
	}

	lines, err := store.ListLinesByTransaction(transactionID)
	if err != nil {
		return err
	}

	var target *domain.TransactionLine
	openAfter := 0
	for i := range lines {
		line := lines[i]
		if line.ItemID == itemID {
			if !line.Open() {
				return fmt.Errorf("item %d in transaction %d: %w", itemID, transactionID, domain.ErrAlreadyClosed)
			}
			target = &line
			continue
		}
		if line.Open() {
			openAfter++
		}
	}
	if target == nil {
		return fmt.Errorf("item %d not in transaction %d: %w", itemID, transactionID, domain.ErrNotFound)
	}

	resolvedAt := now
	target.ResolvedAt = &resolvedAt
	target.Resolution = resolution
	if err := store.UpdateTransactionLine(target); err != nil {
		return err
	}
	if err := store.UpdateItemStatus(itemID, itemStatus); err != nil {
		return err
	}

	if openAfter == 0 {
		closedAt := now
		txn.Status = domain.TransactionClosed
		txn.ClosedAt = &closedAt
		if err := store.UpdateTransaction(txn); err != nil {
			return err
		}
	}
	return nil
}
