package query

import (
	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// ListInventoryHandler lists equipment categories.
type ListInventoryHandler struct {
	store domain.Store
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(store domain.Store) *ListInventoryHandler {
	return &ListInventoryHandler{store: store}
}

func (h *ListInventoryHandler) Handle() ([]domain.Inventory, error) {
	return h.store.ListInventories()
}

// ListStudentsHandler lists the student roster.
type ListStudentsHandler struct {
	store domain.Store
}

// NewListStudentsHandler creates a new list students handler
func NewListStudentsHandler(store domain.Store) *ListStudentsHandler {
	return &ListStudentsHandler{store: store}
}

func (h *ListStudentsHandler) Handle() ([]domain.Student, error) {
	return h.store.ListStudents()
}

// ListStaffHandler lists the staff roster.
type ListStaffHandler struct {
	store domain.Store
}

// NewListStaffHandler creates a new list staff handler
func NewListStaffHandler(store domain.Store) *ListStaffHandler {
	return &ListStaffHandler{store: store}
}

func (h *ListStaffHandler) Handle() ([]domain.Staff, error) {
	return h.store.ListStaff()
}

// InventorySchemaHandler exposes the static field-descriptor table the
// UI uses to build its add-record form.
type InventorySchemaHandler struct{}

// NewInventorySchemaHandler creates a new inventory schema handler
func NewInventorySchemaHandler() *InventorySchemaHandler {
	return &InventorySchemaHandler{}
}

func (h *InventorySchemaHandler) Handle() []domain.FieldDescriptor {
	return domain.InventorySchema()
}
