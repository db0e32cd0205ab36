package repository

import (
	"time"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// NewMemoryStoreWithFixtures creates an in-process store seeded with
// the demo data set: three equipment categories, a handful of items,
// three students, three staff members and two open transactions (one
// current, one ten days old so the overdue view has something to
// show).
func NewMemoryStoreWithFixtures() *MemoryStore {
	s := NewMemoryStore()
	now := time.Now()

	inventories := []*domain.Inventory{
		{Name: "Arduino", TotalQty: 10, Course: "ECE101"},
		{Name: "Raspberry Pi", TotalQty: 5, Course: "CS201"},
		{Name: "Sensor", TotalQty: 20, Course: "ECE101"},
	}
	for _, inv := range inventories {
		_ = s.CreateInventory(inv)
	}

	items := []*domain.Item{
		{SerialNumber: "ARD001", Status: domain.ItemAvailable, InventoryID: 1},
		{SerialNumber: "ARD002", Status: domain.ItemAvailable, InventoryID: 1},
		{SerialNumber: "ARD003", Status: domain.ItemIssued, InventoryID: 1},
		{SerialNumber: "ARD004", Status: domain.ItemDamaged, InventoryID: 1},
		{SerialNumber: "RPI001", Status: domain.ItemIssued, InventoryID: 2},
		{SerialNumber: "RPI002", Status: domain.ItemAvailable, InventoryID: 2},
		{SerialNumber: "SEN001", Status: domain.ItemAvailable, InventoryID: 3},
	}
	_ = s.CreateItems(items)

	students := []*domain.Student{
		{StudentID: "STU001", Name: "John Doe", Phone: "555-0101", Email: "john.doe@university.edu"},
		{StudentID: "STU002", Name: "Jane Smith", Phone: "555-0102", Email: "jane.smith@university.edu"},
		{StudentID: "STU003", Name: "Bob Johnson", Phone: "555-0103", Email: "bob.johnson@university.edu"},
	}
	for _, st := range students {
		_ = s.CreateStudent(st)
	}

	s.AddStaff(domain.Staff{StaffID: "STAFF001", Name: "Dr. Sarah Chen"})
	s.AddStaff(domain.Staff{StaffID: "STAFF002", Name: "Prof. Michael Brown"})
	s.AddStaff(domain.Staff{StaffID: "STAFF003", Name: "Lab Assistant"})

	issuerOne := uint(1)
	issuerTwo := uint(2)
	txns := []*domain.Transaction{
		{StudentID: 1, IssuerID: &issuerOne, Status: domain.TransactionActive, IssueDate: now},
		{StudentID: 2, IssuerID: &issuerTwo, Status: domain.TransactionActive, IssueDate: now.AddDate(0, 0, -10)},
	}
	for _, t := range txns {
		_ = s.CreateTransaction(t)
	}

	// ARD003 is out with John Doe, RPI001 has been with Jane Smith for
	// ten days.
	_ = s.CreateTransactionLine(&domain.TransactionLine{TransactionID: 1, ItemID: 3})
	_ = s.CreateTransactionLine(&domain.TransactionLine{TransactionID: 2, ItemID: 5})

	return s
}
