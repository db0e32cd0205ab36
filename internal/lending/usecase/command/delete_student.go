package command

import (
	"fmt"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// DeleteStudentCommand represents the command to remove a student from
// the roster.
type DeleteStudentCommand struct {
	StudentID uint
}

// DeleteStudentHandler handles the delete student command
type DeleteStudentHandler struct {
	store domain.Store
}

// NewDeleteStudentHandler creates a new delete student handler
func NewDeleteStudentHandler(store domain.Store) *DeleteStudentHandler {
	return &DeleteStudentHandler{store: store}
}

// Handle removes the student; absent ids fail with ErrNotFound.
func (h *DeleteStudentHandler) Handle(cmd DeleteStudentCommand) error {
	if err := h.store.DeleteStudent(cmd.StudentID); err != nil {
		return fmt.Errorf("student %d: %w", cmd.StudentID, err)
	}
	return nil
}
