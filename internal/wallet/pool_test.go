package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests

func TestTransactionPool_SetTransaction(t *testing.T) {
	pool := NewTransactionPool()
	tx, err := NewTransaction(newTestWallet(t), "recipient", 1)
	require.NoError(t, err)

	pool.SetTransaction(*tx)

	stored, ok := pool.Transaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, *tx, stored)
	assert.Equal(t, 1, pool.Len())
}

func TestTransactionPool_ExistingTransaction(t *testing.T) {
	pool := NewTransactionPool()
	sender := newTestWallet(t)
	tx, err := NewTransaction(sender, "recipient", 1)
	require.NoError(t, err)
	pool.SetTransaction(*tx)

	existing, ok := pool.ExistingTransaction(sender.Address)
	require.True(t, ok)
	assert.Equal(t, tx.ID, existing.ID)

	_, ok = pool.ExistingTransaction(newTestWallet(t).Address)
	assert.False(t, ok)
}

func TestTransactionPool_TransactionData(t *testing.T) {
	pool := NewTransactionPool()
	tx1, err := NewTransaction(newTestWallet(t), "recipient", 1)
	require.NoError(t, err)
	tx2, err := NewTransaction(newTestWallet(t), "recipient", 2)
	require.NoError(t, err)
	tx1.Input.Timestamp, tx2.Input.Timestamp = 20, 10
	pool.SetTransaction(*tx1)
	pool.SetTransaction(*tx2)

	data := pool.TransactionData()
	require.Len(t, data, 2)
	assert.Equal(t, tx2.ID, data[0].ID)
	assert.Equal(t, tx1.ID, data[1].ID)
}

func TestTransactionPool_ClearBlockchainTransactions(t *testing.T) {
	tx1, err := NewTransaction(newTestWallet(t), "recipient", 1)
	require.NoError(t, err)
	tx2, err := NewTransaction(newTestWallet(t), "recipient", 2)
	require.NoError(t, err)
	tx3, err := NewTransaction(newTestWallet(t), "recipient", 3)
	require.NoError(t, err)

	pool := NewTransactionPool()
	pool.SetTransaction(*tx1)
	pool.SetTransaction(*tx2)
	pool.SetTransaction(*tx3)

	pool.ClearBlockchainTransactions([][]Transaction{{}, {*tx1, *tx2}})

	_, ok := pool.Transaction(tx1.ID)
	assert.False(t, ok)
	_, ok = pool.Transaction(tx2.ID)
	assert.False(t, ok)
	_, ok = pool.Transaction(tx3.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, pool.Len())
}
