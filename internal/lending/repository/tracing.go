package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

var tracer = otel.Tracer("lending-store")

// TracingStore wraps any Store with OpenTelemetry spans. The store
// contract carries no context, so spans are rooted per call; request
// correlation happens at the HTTP middleware level.
type TracingStore struct {
	next domain.Store
}

// NewTracingStore creates a new tracing decorator around next.
func NewTracingStore(next domain.Store) *TracingStore {
	return &TracingStore{next: next}
}

func startSpan(name string, attrs ...attribute.KeyValue) trace.Span {
	_, span := tracer.Start(context.Background(), name, trace.WithAttributes(attrs...))
	return span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *TracingStore) CreateInventory(inv *domain.Inventory) error {
	span := startSpan("store.CreateInventory", attribute.String("inventory.name", inv.Name))
	err := s.next.CreateInventory(inv)
	endSpan(span, err)
	return err
}

func (s *TracingStore) FindInventoryByID(id uint) (*domain.Inventory, error) {
	span := startSpan("store.FindInventoryByID", attribute.Int("inventory.id", int(id)))
	inv, err := s.next.FindInventoryByID(id)
	endSpan(span, err)
	return inv, err
}

func (s *TracingStore) FindInventoryByName(name string) (*domain.Inventory, error) {
	span := startSpan("store.FindInventoryByName", attribute.String("inventory.name", name))
	inv, err := s.next.FindInventoryByName(name)
	endSpan(span, err)
	return inv, err
}

func (s *TracingStore) ListInventories() ([]domain.Inventory, error) {
	span := startSpan("store.ListInventories")
	invs, err := s.next.ListInventories()
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(invs)))
	}
	endSpan(span, err)
	return invs, err
}

func (s *TracingStore) UpdateInventory(inv *domain.Inventory) error {
	span := startSpan("store.UpdateInventory", attribute.Int("inventory.id", int(inv.ID)))
	err := s.next.UpdateInventory(inv)
	endSpan(span, err)
	return err
}

func (s *TracingStore) CreateItems(items []*domain.Item) error {
	span := startSpan("store.CreateItems", attribute.Int("items.count", len(items)))
	err := s.next.CreateItems(items)
	endSpan(span, err)
	return err
}

func (s *TracingStore) FindItemByID(id uint) (*domain.Item, error) {
	span := startSpan("store.FindItemByID", attribute.Int("item.id", int(id)))
	item, err := s.next.FindItemByID(id)
	endSpan(span, err)
	return item, err
}

func (s *TracingStore) FindItemBySerial(serial string) (*domain.Item, error) {
	span := startSpan("store.FindItemBySerial", attribute.String("item.serial", serial))
	item, err := s.next.FindItemBySerial(serial)
	endSpan(span, err)
	return item, err
}

func (s *TracingStore) ListItems() ([]domain.Item, error) {
	span := startSpan("store.ListItems")
	items, err := s.next.ListItems()
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(items)))
	}
	endSpan(span, err)
	return items, err
}

func (s *TracingStore) ListItemsByInventory(inventoryID uint) ([]domain.Item, error) {
	span := startSpan("store.ListItemsByInventory", attribute.Int("inventory.id", int(inventoryID)))
	items, err := s.next.ListItemsByInventory(inventoryID)
	endSpan(span, err)
	return items, err
}

func (s *TracingStore) UpdateItemStatus(id uint, status string) error {
	span := startSpan("store.UpdateItemStatus",
		attribute.Int("item.id", int(id)),
		attribute.String("item.status", status),
	)
	err := s.next.UpdateItemStatus(id, status)
	endSpan(span, err)
	return err
}

func (s *TracingStore) CreateStudent(student *domain.Student) error {
	span := startSpan("store.CreateStudent", attribute.String("student.code", student.StudentID))
	err := s.next.CreateStudent(student)
	endSpan(span, err)
	return err
}

func (s *TracingStore) FindStudentByID(id uint) (*domain.Student, error) {
	span := startSpan("store.FindStudentByID", attribute.Int("student.id", int(id)))
	student, err := s.next.FindStudentByID(id)
	endSpan(span, err)
	return student, err
}

func (s *TracingStore) ListStudents() ([]domain.Student, error) {
	span := startSpan("store.ListStudents")
	students, err := s.next.ListStudents()
	endSpan(span, err)
	return students, err
}

func (s *TracingStore) DeleteStudent(id uint) error {
	span := startSpan("store.DeleteStudent", attribute.Int("student.id", int(id)))
	err := s.next.DeleteStudent(id)
	endSpan(span, err)
	return err
}

func (s *TracingStore) FindStaffByID(id uint) (*domain.Staff, error) {
	span := startSpan("store.FindStaffByID", attribute.Int("staff.id", int(id)))
	staff, err := s.next.FindStaffByID(id)
	endSpan(span, err)
	return staff, err
}

func (s *TracingStore) ListStaff() ([]domain.Staff, error) {
	span := startSpan("store.ListStaff")
	staff, err := s.next.ListStaff()
	endSpan(span, err)
	return staff, err
}

func (s *TracingStore) CreateTransaction(t *domain.Transaction) error {
	span := startSpan("store.CreateTransaction", attribute.Int("student.id", int(t.StudentID)))
	err := s.next.CreateTransaction(t)
	if err == nil {
		span.SetAttributes(attribute.Int("transaction.id", int(t.ID)))
	}
	endSpan(span, err)
	return err
}

func (s *TracingStore) FindTransactionByID(id uint) (*domain.Transaction, error) {
	span := startSpan("store.FindTransactionByID", attribute.Int("transaction.id", int(id)))
	t, err := s.next.FindTransactionByID(id)
	endSpan(span, err)
	return t, err
}

func (s *TracingStore) ListTransactions() ([]domain.Transaction, error) {
	span := startSpan("store.ListTransactions")
	ts, err := s.next.ListTransactions()
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(ts)))
	}
	endSpan(span, err)
	return ts, err
}

func (s *TracingStore) ListActiveTransactionsByStudent(studentID uint) ([]domain.Transaction, error) {
	span := startSpan("store.ListActiveTransactionsByStudent", attribute.Int("student.id", int(studentID)))
	ts, err := s.next.ListActiveTransactionsByStudent(studentID)
	endSpan(span, err)
	return ts, err
}

func (s *TracingStore) UpdateTransaction(t *domain.Transaction) error {
	span := startSpan("store.UpdateTransaction",
		attribute.Int("transaction.id", int(t.ID)),
		attribute.String("transaction.status", t.Status),
	)
	err := s.next.UpdateTransaction(t)
	endSpan(span, err)
	return err
}

func (s *TracingStore) CreateTransactionLine(l *domain.TransactionLine) error {
	span := startSpan("store.CreateTransactionLine",
		attribute.Int("transaction.id", int(l.TransactionID)),
		attribute.Int("item.id", int(l.ItemID)),
	)
	err := s.next.CreateTransactionLine(l)
	endSpan(span, err)
	return err
}

func (s *TracingStore) ListLinesByTransaction(transactionID uint) ([]domain.TransactionLine, error) {
	span := startSpan("store.ListLinesByTransaction", attribute.Int("transaction.id", int(transactionID)))
	lines, err := s.next.ListLinesByTransaction(transactionID)
	endSpan(span, err)
	return lines, err
}

func (s *TracingStore) ListLinesByItem(itemID uint) ([]domain.TransactionLine, error) {
	span := startSpan("store.ListLinesByItem", attribute.Int("item.id", int(itemID)))
	lines, err := s.next.ListLinesByItem(itemID)
	endSpan(span, err)
	return lines, err
}

func (s *TracingStore) UpdateTransactionLine(l *domain.TransactionLine) error {
	span := startSpan("store.UpdateTransactionLine", attribute.Int("line.id", int(l.ID)))
	err := s.next.UpdateTransactionLine(l)
	endSpan(span, err)
	return err
}
