package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidosbek/labtrack/internal/lending/domain"
	"github.com/aidosbek/labtrack/internal/lending/repository"
)

func TestOverdueItems(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()
	handler := NewOverdueItemsHandler(store)

	t.Run("ten day old loan is overdue at the default threshold", func(t *testing.T) {
		overdue, err := handler.Handle(0)
		require.NoError(t, err)
		require.Len(t, overdue, 1)

		assert.Equal(t, "RPI001", overdue[0].Item.SerialNumber)
		assert.Equal(t, uint(2), overdue[0].TransactionID)
		assert.Equal(t, "Jane Smith", overdue[0].StudentName)
		assert.Equal(t, 10, overdue[0].DaysOverdue)
	})

	t.Run("raising the threshold clears it", func(t *testing.T) {
		overdue, err := handler.Handle(30)
		require.NoError(t, err)
		assert.Empty(t, overdue)
	})
}

func TestOverdueThresholdBoundary(t *testing.T) {
	store := repository.NewMemoryStore()
	require.NoError(t, store.CreateStudent(&domain.Student{StudentID: "STU001", Name: "John Doe"}))
	require.NoError(t, store.CreateInventory(&domain.Inventory{Name: "Arduino", TotalQty: 2}))
	require.NoError(t, store.CreateItems([]*domain.Item{
		{SerialNumber: "ARD001", Status: domain.ItemIssued, InventoryID: 1},
		{SerialNumber: "ARD002", Status: domain.ItemIssued, InventoryID: 1},
	}))

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	atThreshold := &domain.Transaction{
		StudentID: 1,
		Status:    domain.TransactionActive,
		IssueDate: now.Add(-7 * 24 * time.Hour),
	}
	require.NoError(t, store.CreateTransaction(atThreshold))
	require.NoError(t, store.CreateTransactionLine(&domain.TransactionLine{TransactionID: atThreshold.ID, ItemID: 1}))

	pastThreshold := &domain.Transaction{
		StudentID: 1,
		Status:    domain.TransactionActive,
		IssueDate: now.Add(-7*24*time.Hour - time.Second),
	}
	require.NoError(t, store.CreateTransaction(pastThreshold))
	require.NoError(t, store.CreateTransactionLine(&domain.TransactionLine{TransactionID: pastThreshold.ID, ItemID: 2}))

	handler := NewOverdueItemsHandler(store)
	handler.now = func() time.Time { return now }

	overdue, err := handler.Handle(7)
	require.NoError(t, err)

	// Exactly at the threshold is not overdue; one second past is.
	require.Len(t, overdue, 1)
	assert.Equal(t, pastThreshold.ID, overdue[0].TransactionID)
	assert.Equal(t, 7, overdue[0].DaysOverdue)
}

func TestOverdueSkipsResolvedLines(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()

	lines, err := store.ListLinesByTransaction(2)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	resolvedAt := time.Now()
	lines[0].ResolvedAt = &resolvedAt
	lines[0].Resolution = domain.ResolutionReturned
	require.NoError(t, store.UpdateTransactionLine(&lines[0]))

	overdue, err := NewOverdueItemsHandler(store).Handle(7)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}
