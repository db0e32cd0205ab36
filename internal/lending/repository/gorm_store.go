package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// GormStore is the relational backend of the entity store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new relational store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates or updates the schema for all entities.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&domain.Inventory{},
		&domain.Item{},
		&domain.Student{},
		&domain.Staff{},
		&domain.Transaction{},
		&domain.TransactionLine{},
	)
}

// storeErr translates driver errors at the store boundary. Callers see
// only domain errors; anything unexpected becomes ErrStoreUnavailable.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateKey
	default:
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
}

func (s *GormStore) CreateInventory(inv *domain.Inventory) error {
	var count int64
	if err := s.db.Model(&domain.Inventory{}).
		Where("LOWER(name) = LOWER(?)", inv.Name).
		Count(&count).Error; err != nil {
		return storeErr(err)
	}
	if count > 0 {
		return domain.ErrDuplicateKey
	}
	return storeErr(s.db.Create(inv).Error)
}

func (s *GormStore) FindInventoryByID(id uint) (*domain.Inventory, error) {
	var inv domain.Inventory
	if err := s.db.First(&inv, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &inv, nil
}

func (s *GormStore) FindInventoryByName(name string) (*domain.Inventory, error) {
	var inv domain.Inventory
	if err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&inv).Error; err != nil {
		return nil, storeErr(err)
	}
	return &inv, nil
}

func (s *GormStore) ListInventories() ([]domain.Inventory, error) {
	var invs []domain.Inventory
	if err := s.db.Order("id").Find(&invs).Error; err != nil {
		return nil, storeErr(err)
	}
	return invs, nil
}

func (s *GormStore) UpdateInventory(inv *domain.Inventory) error {
	return storeErr(s.db.Save(inv).Error)
}

func (s *GormStore) CreateItems(items []*domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	// Insert in batches, same limit the original importer used.
	return storeErr(s.db.CreateInBatches(items, 100).Error)
}

func (s *GormStore) FindItemByID(id uint) (*domain.Item, error) {
	var item domain.Item
	if err := s.db.Preload("Inventory").First(&item, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &item, nil
}

func (s *GormStore) FindItemBySerial(serial string) (*domain.Item, error) {
	var item domain.Item
	err := s.db.Preload("Inventory").
		Where("UPPER(serial_number) = UPPER(?)", serial).
		First(&item).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &item, nil
}

func (s *GormStore) ListItems() ([]domain.Item, error) {
	var items []domain.Item
	if err := s.db.Preload("Inventory").Order("id").Find(&items).Error; err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (s *GormStore) ListItemsByInventory(inventoryID uint) ([]domain.Item, error) {
	var items []domain.Item
	err := s.db.Where("inventory_id = ?", inventoryID).Order("id").Find(&items).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (s *GormStore) UpdateItemStatus(id uint, status string) error {
	res := s.db.Model(&domain.Item{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateStudent(student *domain.Student) error {
	return storeErr(s.db.Create(student).Error)
}

func (s *GormStore) FindStudentByID(id uint) (*domain.Student, error) {
	var student domain.Student
	if err := s.db.First(&student, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &student, nil
}

func (s *GormStore) ListStudents() ([]domain.Student, error) {
	var students []domain.Student
	if err := s.db.Order("id").Find(&students).Error; err != nil {
		return nil, storeErr(err)
	}
	return students, nil
}

func (s *GormStore) DeleteStudent(id uint) error {
	res := s.db.Delete(&domain.Student{}, id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *GormStore) FindStaffByID(id uint) (*domain.Staff, error) {
	var staff domain.Staff
	if err := s.db.First(&staff, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &staff, nil
}

func (s *GormStore) ListStaff() ([]domain.Staff, error) {
	var staff []domain.Staff
	if err := s.db.Order("id").Find(&staff).Error; err != nil {
		return nil, storeErr(err)
	}
	return staff, nil
}

func (s *GormStore) CreateTransaction(t *domain.Transaction) error {
	return storeErr(s.db.Create(t).Error)
}

func (s *GormStore) FindTransactionByID(id uint) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := s.db.First(&t, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &t, nil
}

func (s *GormStore) ListTransactions() ([]domain.Transaction, error) {
	var ts []domain.Transaction
	if err := s.db.Order("id").Find(&ts).Error; err != nil {
		return nil, storeErr(err)
	}
	return ts, nil
}

func (s *GormStore) ListActiveTransactionsByStudent(studentID uint) ([]domain.Transaction, error) {
	var ts []domain.Transaction
	err := s.db.
		Where("student_id = ? AND status = ?", studentID, domain.TransactionActive).
		Order("id").Find(&ts).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return ts, nil
}

func (s *GormStore) UpdateTransaction(t *domain.Transaction) error {
	return storeErr(s.db.Save(t).Error)
}

func (s *GormStore) CreateTransactionLine(l *domain.TransactionLine) error {
	return storeErr(s.db.Create(l).Error)
}

func (s *GormStore) ListLinesByTransaction(transactionID uint) ([]domain.TransactionLine, error) {
	var lines []domain.TransactionLine
	err := s.db.Where("transaction_id = ?", transactionID).Order("id").Find(&lines).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return lines, nil
}

func (s *GormStore) ListLinesByItem(itemID uint) ([]domain.TransactionLine, error) {
	var lines []domain.TransactionLine
	err := s.db.Where("item_id = ?", itemID).Order("id").Find(&lines).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return lines, nil
}

func (s *GormStore) UpdateTransactionLine(l *domain.TransactionLine) error {
	return storeErr(s.db.Save(l).Error)
}
