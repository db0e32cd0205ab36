package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidosbek/labtrack/internal/lending/domain"
	"github.com/aidosbek/labtrack/internal/lending/repository"
)

func TestCreateStudent(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()
	handler := NewCreateStudentHandler(store)

	t.Run("creates and trims", func(t *testing.T) {
		student, err := handler.Handle(CreateStudentCommand{
			StudentID: " STU004 ",
			Name:      " Alice Wu ",
			Email:     "alice@university.edu",
		})
		require.NoError(t, err)
		assert.Equal(t, "STU004", student.StudentID)
		assert.Equal(t, "Alice Wu", student.Name)
		assert.NotZero(t, student.ID)
	})

	t.Run("duplicate code", func(t *testing.T) {
		_, err := handler.Handle(CreateStudentCommand{StudentID: "STU001", Name: "Imposter"})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	t.Run("missing code", func(t *testing.T) {
		_, err := handler.Handle(CreateStudentCommand{Name: "No Code"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := handler.Handle(CreateStudentCommand{StudentID: "STU005"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDeleteStudent(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()
	handler := NewDeleteStudentHandler(store)

	require.NoError(t, handler.Handle(DeleteStudentCommand{StudentID: 3}))

	_, err := store.FindStudentByID(3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, handler.Handle(DeleteStudentCommand{StudentID: 3}), domain.ErrNotFound)
}

func TestCreateInventory(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()
	handler := NewCreateInventoryHandler(store)

	t.Run("creates a category", func(t *testing.T) {
		inv, err := handler.Handle(CreateInventoryCommand{
			Name:     "Multimeter",
			TotalQty: 4,
			Course:   "ECE101",
		})
		require.NoError(t, err)
		assert.NotZero(t, inv.ID)
	})

	t.Run("duplicate name ignores case", func(t *testing.T) {
		_, err := handler.Handle(CreateInventoryCommand{Name: "arduino", TotalQty: 1})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := handler.Handle(CreateInventoryCommand{Name: "  "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := handler.Handle(CreateInventoryCommand{Name: "Probe", TotalQty: -1})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
