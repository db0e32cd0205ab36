package domain

// Store is the entity store contract. Two interchangeable backends
// implement it (in-process and relational); callers never branch on
// which one is active. Implementations assign monotonically increasing
// integer ids, enforce the uniqueness invariants (inventory name
// case-insensitively, student code, serial per inventory) and surface
// transport failures as ErrStoreUnavailable.
type Store interface {
	// Inventory
	CreateInventory(inv *Inventory) error
	FindInventoryByID(id uint) (*Inventory, error)
	// FindInventoryByName matches the name case-insensitively.
	FindInventoryByName(name string) (*Inventory, error)
	ListInventories() ([]Inventory, error)
	UpdateInventory(inv *Inventory) error

	// Items
	CreateItems(items []*Item) error
	FindItemByID(id uint) (*Item, error)
	FindItemBySerial(serial string) (*Item, error)
	// ListItems returns every item with its owning inventory attached.
	ListItems() ([]Item, error)
	ListItemsByInventory(inventoryID uint) ([]Item, error)
	UpdateItemStatus(id uint, status string) error

	// Students
	CreateStudent(s *Student) error
	FindStudentByID(id uint) (*Student, error)
	ListStudents() ([]Student, error)
	DeleteStudent(id uint) error

	// Staff
	FindStaffByID(id uint) (*Staff, error)
	ListStaff() ([]Staff, error)

	// Transactions
	CreateTransaction(t *Transaction) error
	FindTransactionByID(id uint) (*Transaction, error)
	ListTransactions() ([]Transaction, error)
	ListActiveTransactionsByStudent(studentID uint) ([]Transaction, error)
	UpdateTransaction(t *Transaction) error

	// Transaction lines
	CreateTransactionLine(l *TransactionLine) error
	ListLinesByTransaction(transactionID uint) ([]TransactionLine, error)
	ListLinesByItem(itemID uint) ([]TransactionLine, error)
	UpdateTransactionLine(l *TransactionLine) error
}
