package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidosbek/labtrack/internal/lending/domain"
	"github.com/aidosbek/labtrack/internal/lending/repository"
)

func TestIssueItems(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()
	handler := NewIssueItemsHandler(store)

	t.Run("issues available items in one transaction", func(t *testing.T) {
		txnID, err := handler.Handle(IssueItemsCommand{
			StudentID: 3,
			ItemIDs:   []uint{1, 2}, // ARD001, ARD002
		})
		require.NoError(t, err)

		txn, err := store.FindTransactionByID(txnID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionActive, txn.Status)
		assert.Equal(t, uint(3), txn.StudentID)
		assert.False(t, txn.IssueDate.IsZero())

		lines, err := store.ListLinesByTransaction(txnID)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.True(t, line.Open())
		}

		for _, id := range []uint{1, 2} {
			item, err := store.FindItemByID(id)
			require.NoError(t, err)
			assert.Equal(t, domain.ItemIssued, item.Status)
		}
	})

	t.Run("resolves serials to items", func(t *testing.T) {
		txnID, err := handler.Handle(IssueItemsCommand{
			StudentID: 2,
			Serials:   []string{"rpi002"},
		})
		require.NoError(t, err)

		lines, err := store.ListLinesByTransaction(txnID)
		require.NoError(t, err)
		require.Len(t, lines, 1)

		item, err := store.FindItemByID(lines[0].ItemID)
		require.NoError(t, err)
		assert.Equal(t, "RPI002", item.SerialNumber)
		assert.Equal(t, domain.ItemIssued, item.Status)
	})

	t.Run("records the issuer when given", func(t *testing.T) {
		issuer := uint(2)
		txnID, err := handler.Handle(IssueItemsCommand{
			StudentID: 1,
			ItemIDs:   []uint{7}, // SEN001
			IssuerID:  &issuer,
		})
		require.NoError(t, err)

		txn, err := store.FindTransactionByID(txnID)
		require.NoError(t, err)
		require.NotNil(t, txn.IssuerID)
		assert.Equal(t, issuer, *txn.IssuerID)
	})
}

func TestIssueItemsRejections(t *testing.T) {
	store := repository.NewMemoryStoreWithFixtures()
	handler := NewIssueItemsHandler(store)

	countTxns := func(t *testing.T) int {
		t.Helper()
		txns, err := store.ListTransactions()
		require.NoError(t, err)
		return len(txns)
	}
	before := countTxns(t)

	t.Run("empty item list", func(t *testing.T) {
		_, err := handler.Handle(IssueItemsCommand{StudentID: 1})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := handler.Handle(IssueItemsCommand{StudentID: 99, ItemIDs: []uint{1}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown issuer", func(t *testing.T) {
		issuer := uint(99)
		_, err := handler.Handle(IssueItemsCommand{StudentID: 1, ItemIDs: []uint{1}, IssuerID: &issuer})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("item already out", func(t *testing.T) {
		_, err := handler.Handle(IssueItemsCommand{
			StudentID: 1,
			ItemIDs:   []uint{1, 3}, // ARD003 is already issued
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyIssued)

		// The valid item in the same request must be untouched.
		item, err := store.FindItemByID(1)
		require.NoError(t, err)
		assert.Equal(t, domain.ItemAvailable, item.Status)
	})

	t.Run("unknown serial", func(t *testing.T) {
		_, err := handler.Handle(IssueItemsCommand{StudentID: 1, Serials: []string{"ZZZ999"}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("item listed twice", func(t *testing.T) {
		_, err := handler.Handle(IssueItemsCommand{StudentID: 1, ItemIDs: []uint{1, 1}})
		assert.ErrorIs(t, err, domain.ErrValidation)

		// No lines may exist for the item: a second open line would let
		// one return close the transaction with the other still open.
		lines, err := store.ListLinesByItem(1)
		require.NoError(t, err)
		assert.Empty(t, lines)

		item, err := store.FindItemByID(1)
		require.NoError(t, err)
		assert.Equal(t, domain.ItemAvailable, item.Status)
	})

	t.Run("serial duplicating an id", func(t *testing.T) {
		_, err := handler.Handle(IssueItemsCommand{
			StudentID: 1,
			ItemIDs:   []uint{2},
			Serials:   []string{"ARD002"},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("damaged item needs the override", func(t *testing.T) {
		_, err := handler.Handle(IssueItemsCommand{
			StudentID: 1,
			ItemIDs:   []uint{4}, // ARD004 is damaged
		})
		assert.ErrorIs(t, err, domain.ErrDamagedConfirmationRequired)
	})

	t.Run("rejected requests create no transactions", func(t *testing.T) {
		assert.Equal(t, before, countTxns(t))
	})

	t.Run("override issues the damaged item", func(t *testing.T) {
		txnID, err := handler.Handle(IssueItemsCommand{
			StudentID:          1,
			ItemIDs:            []uint{4},
			AcknowledgeDamaged: true,
		})
		require.NoError(t, err)
		assert.NotZero(t, txnID)

		item, err := store.FindItemByID(4)
		require.NoError(t, err)
		assert.Equal(t, domain.ItemIssued, item.Status)
	})
}
