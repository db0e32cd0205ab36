package domain

import (
	"time"
)

// Item statuses
const (
	ItemAvailable = "Available"
	ItemIssued    = "Issued"
	ItemDamaged   = "Damaged"
)

// Transaction statuses
const (
	TransactionActive = "Active"
	TransactionClosed = "Closed"
)

// Line resolutions
const (
	ResolutionReturned = "Returned"
	ResolutionDamaged  = "Damaged"
)

// Inventory represents an equipment category (e.g. "Arduino").
// TotalQty is a cumulative intake counter, not a live available count:
// it is incremented on intake and never decremented on issue.
type Inventory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	TotalQty    int       `json:"total_qty" gorm:"not null;default:0"`
	Course      string    `json:"course,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventory"
}

// Item represents one physical, serialized unit of lab equipment.
// Status is written only by the transaction workflow.
type Item struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	SerialNumber string     `json:"serial_number" gorm:"not null;uniqueIndex:idx_items_inventory_serial,composite:inventory_serial"`
	Status       string     `json:"status" gorm:"not null;default:'Available'"`
	InventoryID  uint       `json:"inventory_id" gorm:"not null;index;uniqueIndex:idx_items_inventory_serial,composite:inventory_serial"`
	Inventory    *Inventory `json:"inventory,omitempty" gorm:"foreignKey:InventoryID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// Student represents a borrower.
type Student struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID string    `json:"student_id" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Student) TableName() string {
	return "students"
}

// Staff represents an issuer. The roster is managed externally; this
// service only reads it.
type Staff struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	StaffID string `json:"staff_id" gorm:"uniqueIndex;not null"`
	Name    string `json:"name" gorm:"not null"`
}

// TableName specifies the table name
func (Staff) TableName() string {
	return "staff"
}

// Transaction groups one or more items lent to one student in a single
// issue event. IssueDate is immutable once set.
type Transaction struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	StudentID uint       `json:"student_id" gorm:"not null;index"`
	IssuerID  *uint      `json:"issuer_id,omitempty"`
	Status    string     `json:"status" gorm:"not null;default:'Active';index"`
	IssueDate time.Time  `json:"issue_date" gorm:"not null"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// IsClosed reports whether the transaction has been closed.
func (t *Transaction) IsClosed() bool {
	return t.Status == TransactionClosed
}

// TransactionLine links a transaction to one issued item. A line is
// open until the item comes back; ResolvedAt and Resolution record the
// per-item outcome. The owning transaction closes when its last open
// line resolves.
type TransactionLine struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	TransactionID uint       `json:"transaction_id" gorm:"not null;index"`
	ItemID        uint       `json:"item_id" gorm:"not null;index"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	Resolution    string     `json:"resolution,omitempty"`
}

// TableName specifies the table name
func (TransactionLine) TableName() string {
	return "transaction_lines"
}

// Open reports whether the line still represents an outstanding item.
func (l *TransactionLine) Open() bool {
	return l.ResolvedAt == nil
}
