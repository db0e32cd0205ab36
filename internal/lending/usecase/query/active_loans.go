package query

import (
	"fmt"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// Loan is one outstanding item of a student, carrying the transaction
// and line ids the UI needs for a later return or damage call.
type Loan struct {
	Item          domain.Item `json:"item"`
	TransactionID uint        `json:"transaction_id"`
	LineID        uint        `json:"line_id"`
}

// ActiveLoansHandler lists everything a student currently holds.
type ActiveLoansHandler struct {
	store domain.Store
}

// NewActiveLoansHandler creates a new active loans handler
func NewActiveLoansHandler(store domain.Store) *ActiveLoansHandler {
	return &ActiveLoansHandler{store: store}
}

// Handle walks the student's active transactions and collects the
// items behind their open lines, each joined with its inventory.
func (h *ActiveLoansHandler) Handle(studentID uint) ([]Loan, error) {
	if _, err := h.store.FindStudentByID(studentID); err != nil {
		return nil, fmt.Errorf("student %d: %w", studentID, err)
	}

	txns, err := h.store.ListActiveTransactionsByStudent(studentID)
	if err != nil {
		return nil, err
	}

	loans := []Loan{}
	for _, txn := range txns {
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
			loans = append(loans, Loan{
				Item:          *item,
				TransactionID: txn.ID,
				LineID:        line.ID,
			})
		}
	}
	return loans, nil
}
