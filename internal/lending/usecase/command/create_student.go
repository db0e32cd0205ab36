package command

import (
	"fmt"
	"strings"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// CreateStudentCommand represents the command to add a student to the
// roster.
type CreateStudentCommand struct {
	StudentID string
	Name      string
	Phone     string
	Email     string
}

// CreateStudentHandler handles the create student command
type CreateStudentHandler struct {
	store domain.Store
}

// NewCreateStudentHandler creates a new create student handler
func NewCreateStudentHandler(store domain.Store) *CreateStudentHandler {
	return &CreateStudentHandler{store: store}
}

// Handle validates the required fields and inserts the student. A
// student code collision surfaces as ErrDuplicateKey.
func (h *CreateStudentHandler) Handle(cmd CreateStudentCommand) (*domain.Student, error) {
	code := strings.TrimSpace(cmd.StudentID)
	name := strings.TrimSpace(cmd.Name)
	if code == "" {
		return nil, fmt.Errorf("%w: student_id is required", domain.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	student := &domain.Student{
		StudentID: code,
		Name:      name,
		Phone:     strings.TrimSpace(cmd.Phone),
		Email:     strings.TrimSpace(cmd.Email),
	}
	if err := h.store.CreateStudent(student); err != nil {
		return nil, err
	}
	return student, nil
}
