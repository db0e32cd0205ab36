package query

import (
	"time"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// OverdueItem is an outstanding item whose transaction passed the
// configured age threshold.
type OverdueItem struct {
	Item          domain.Item `json:"item"`
	TransactionID uint        `json:"transaction_id"`
	StudentID     uint        `json:"student_id"`
	StudentName   string      `json:"student_name"`
	DaysOverdue   int         `json:"days_overdue"`
}

// OverdueItemsHandler finds loans that have been out too long.
type OverdueItemsHandler struct {
	store domain.Store
	now   func() time.Time
}

// NewOverdueItemsHandler creates a new overdue items handler
func NewOverdueItemsHandler(store domain.Store) *OverdueItemsHandler {
	return &OverdueItemsHandler{store: store, now: time.Now}
}

// Handle returns the items of every Active transaction issued strictly
// before now minus daysThreshold days. A transaction exactly at the
// threshold is not overdue. days_overdue is the whole number of days
// since issue.
func (h *OverdueItemsHandler) Handle(daysThreshold int) ([]OverdueItem, error) {
	if daysThreshold <= 0 {
		daysThreshold = 7
	}

	txns, err := h.store.ListTransactions()
	if err != nil {
		return nil, err
	}

	now := h.now()
	cutoff := now.Add(-time.Duration(daysThreshold) * 24 * time.Hour)

	overdue := []OverdueItem{}
	for _, txn := range txns {
		if txn.Status != domain.TransactionActive || !txn.IssueDate.Before(cutoff) {
			continue
		}
		daysOverdue := int(now.Sub(txn.IssueDate).Hours() / 24)

		studentName := "Unknown"
		if student, err := h.store.FindStudentByID(txn.StudentID); err == nil {
			studentName = student.Name
		}

		lines, err := h.store.ListLinesByTransaction(txn.ID)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			if !line.Open() {
				continue
			}
			item, err := h.store.FindItemByID(line.ItemID)
			if err != nil {
				return nil, err
			}
			overdue = append(overdue, OverdueItem{
				Item:          *item,
				TransactionID: txn.ID,
				StudentID:     txn.StudentID,
				StudentName:   studentName,
				DaysOverdue:   daysOverdue,
			})
		}
	}
	return overdue, nil
}
