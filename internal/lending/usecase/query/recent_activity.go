package query

import (
	"fmt"
	"sort"
	"time"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// Activity actions
const (
	ActionIssue  = "Issue"
	ActionReturn = "Return"
)

// ActivityEntry is one row of the dashboard feed: one transaction line
// with its student, component and a human-relative timestamp.
type ActivityEntry struct {
	StudentName   string    `json:"student_name"`
	ItemName      string    `json:"item_name"`
	SerialNumber  string    `json:"serial_number"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
	TimeAgo       string    `json:"time_ago"`
	TransactionID uint      `json:"transaction_id"`
}

// RecentActivityHandler builds the dashboard activity feed.
type RecentActivityHandler struct {
	store domain.Store
	now   func() time.Time
}

// NewRecentActivityHandler creates a new recent activity handler
func NewRecentActivityHandler(store domain.Store) *RecentActivityHandler {
	return &RecentActivityHandler{store: store, now: time.Now}
}

// Handle returns the newest limit transactions (ties keep insertion
// order), each expanded one row per line. The limit counts
// transactions, not rows, so a multi-item loan is never cut
// mid-transaction. The action is inferred from the transaction
// status: still Active means Issue, anything closed shows as Return.
func (h *RecentActivityHandler) Handle(limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	txns, err := h.store.ListTransactions()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].IssueDate.After(txns[j].IssueDate)
	})
	if len(txns) > limit {
		txns = txns[:limit]
	}

	now := h.now()
	entries := []ActivityEntry{}
	for _, txn := range txns {

		studentName := "Unknown"
		if student, err := h.store.FindStudentByID(txn.StudentID); err == nil {
			studentName = student.Name
		}

		action := ActionReturn
		if txn.Status == domain.TransactionActive {
			action = ActionIssue
		}

		lines, err := h.store.ListLinesByTransaction(txn.ID)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			item, err := h.store.FindItemByID(line.ItemID)
			if err != nil {
				return nil, err
			}
			itemName := "Unknown"
			if item.Inventory != nil {
				itemName = item.Inventory.Name
			}
			entries = append(entries, ActivityEntry{
				StudentName:   studentName,
				ItemName:      itemName,
				SerialNumber:  item.SerialNumber,
				Action:        action,
				Timestamp:     txn.IssueDate,
				TimeAgo:       RelativeTime(now, txn.IssueDate),
				TransactionID: txn.ID,
			})
		}
	}
	return entries, nil
}

// RelativeTime buckets a timestamp for the activity feed: under a
// minute "Just now", then minutes, hours and days. Future timestamps
// render as "Just now".
func RelativeTime(now, t time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	default:
		return plural(int(diff.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
