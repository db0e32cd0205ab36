package kafka

import "time"

// ItemsIssuedEvent announces a new loan transaction.
type ItemsIssuedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	TransactionID uint      `json:"transaction_id"`
	StudentID     uint      `json:"student_id"`
	IssuerID      *uint     `json:"issuer_id,omitempty"`
	ItemIDs       []uint    `json:"item_ids"`
	Timestamp     time.Time `json:"timestamp"`
}

// ItemResolvedEvent announces one item coming back, whether returned
// intact or reported damaged.
type ItemResolvedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	TransactionID uint      `json:"transaction_id"`
	ItemID        uint      `json:"item_id"`
	Resolution    string    `json:"resolution"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeItemsIssued  = "lending.items.issued"
	EventTypeItemReturned = "lending.item.returned"
	EventTypeItemDamaged  = "lending.item.damaged"
)

// Kafka topics
const (
	TopicItemsIssued  = "lending-items-issued"
	TopicItemResolved = "lending-item-resolved"
)
