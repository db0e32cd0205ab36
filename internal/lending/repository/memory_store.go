package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// MemoryStore is the in-process backend of the entity store. It backs
// the service when no database is reachable and all of the tests.
// Records are copied on the way in and out so callers never share
// memory with the store. The mutex only guards slice integrity; the
// workflow itself assumes the single-threaded host described by the
// service contract.
type MemoryStore struct {
	mu sync.RWMutex

	inventories []domain.Inventory
	items       []domain.Item
	students    []domain.Student
	staff       []domain.Staff
	txns        []domain.Transaction
	lines       []domain.TransactionLine

	nextInventoryID uint
	nextItemID      uint
	nextStudentID   uint
	nextStaffID     uint
	nextTxnID       uint
	nextLineID      uint
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextInventoryID: 1,
		nextItemID:      1,
		nextStudentID:   1,
		nextStaffID:     1,
		nextTxnID:       1,
		nextLineID:      1,
	}
}

func (s *MemoryStore) CreateInventory(inv *domain.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventories {
		if strings.EqualFold(s.inventories[i].Name, inv.Name) {
			return domain.ErrDuplicateKey
		}
	}
	inv.ID = s.nextInventoryID
	s.nextInventoryID++
	s.inventories = append(s.inventories, *inv)
	return nil
}

func (s *MemoryStore) FindInventoryByID(id uint) (*domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.inventories {
		if s.inventories[i].ID == id {
			inv := s.inventories[i]
			return &inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) FindInventoryByName(name string) (*domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.inventories {
		if strings.EqualFold(s.inventories[i].Name, name) {
			inv := s.inventories[i]
			return &inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ListInventories() ([]domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Inventory, len(s.inventories))
	copy(out, s.inventories)
	return out, nil
}

func (s *MemoryStore) UpdateInventory(inv *domain.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventories {
		if s.inventories[i].ID == inv.ID {
			s.inventories[i] = *inv
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *MemoryStore) CreateItems(items []*domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		for i := range s.items {
			if s.items[i].InventoryID == item.InventoryID &&
				strings.EqualFold(s.items[i].SerialNumber, item.SerialNumber) {
				return domain.ErrDuplicateKey
			}
		}
	}
	for _, item := range items {
		item.ID = s.nextItemID
		s.nextItemID++
		stored := *item
		stored.Inventory = nil
		s.items = append(s.items, stored)
	}
	return nil
}

// attachInventory resolves the owning inventory onto an item copy.
// Callers hold at least the read lock.
func (s *MemoryStore) attachInventory(item domain.Item) domain.Item {
	for i := range s.inventories {
		if s.inventories[i].ID == item.InventoryID {
			inv := s.inventories[i]
			item.Inventory = &inv
			break
		}
	}
	return item
}

func (s *MemoryStore) FindItemByID(id uint) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ID == id {
			item := s.attachInventory(s.items[i])
			return &item, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) FindItemBySerial(serial string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if strings.EqualFold(s.items[i].SerialNumber, serial) {
			item := s.attachInventory(s.items[i])
			return &item, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ListItems() ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Item, 0, len(s.items))
	for i := range s.items {
		out = append(out, s.attachInventory(s.items[i]))
	}
	return out, nil
}

func (s *MemoryStore) ListItemsByInventory(inventoryID uint) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Item
	for i := range s.items {
		if s.items[i].InventoryID == inventoryID {
			out = append(out, s.items[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateItemStatus(id uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *MemoryStore) CreateStudent(student *domain.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.students {
		if s.students[i].StudentID == student.StudentID {
			return domain.ErrDuplicateKey
		}
	}
	student.ID = s.nextStudentID
	s.nextStudentID++
	s.students = append(s.students, *student)
	return nil
}

func (s *MemoryStore) FindStudentByID(id uint) (*domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.students {
		if s.students[i].ID == id {
			student := s.students[i]
			return &student, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ListStudents() ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Student, len(s.students))
	copy(out, s.students)
	return out, nil
}

func (s *MemoryStore) DeleteStudent(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.students {
		if s.students[i].ID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *MemoryStore) FindStaffByID(id uint) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.staff {
		if s.staff[i].ID == id {
			staff := s.staff[i]
			return &staff, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ListStaff() ([]domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Staff, len(s.staff))
	copy(out, s.staff)
	return out, nil
}

// AddStaff seeds a staff row. The staff roster is managed externally,
// so there is no Store-level create; this exists for fixtures.
func (s *MemoryStore) AddStaff(staff domain.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff.ID = s.nextStaffID
	s.nextStaffID++
	s.staff = append(s.staff, staff)
}

func (s *MemoryStore) CreateTransaction(t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextTxnID
	s.nextTxnID++
	s.txns = append(s.txns, *t)
	return nil
}

func (s *MemoryStore) FindTransactionByID(id uint) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.txns {
		if s.txns[i].ID == id {
			t := s.txns[i]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ListTransactions() ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, len(s.txns))
	copy(out, s.txns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) ListActiveTransactionsByStudent(studentID uint) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Transaction
	for i := range s.txns {
		if s.txns[i].StudentID == studentID && s.txns[i].Status == domain.TransactionActive {
			out = append(out, s.txns[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateTransaction(t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txns {
		if s.txns[i].ID == t.ID {
			s.txns[i] = *t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *MemoryStore) CreateTransactionLine(l *domain.TransactionLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.nextLineID
	s.nextLineID++
	s.lines = append(s.lines, *l)
	return nil
}

func (s *MemoryStore) ListLinesByTransaction(transactionID uint) ([]domain.TransactionLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.TransactionLine
	for i := range s.lines {
		if s.lines[i].TransactionID == transactionID {
			out = append(out, s.lines[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) ListLinesByItem(itemID uint) ([]domain.TransactionLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.TransactionLine
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			out = append(out, s.lines[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateTransactionLine(l *domain.TransactionLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ID == l.ID {
			s.lines[i] = *l
			return nil
		}
	}
	return domain.ErrNotFound
}
