package modelstorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

func TestBlockSQLEntry(t *testing.T) {
	genesis, err := NewBlockSQLEntry(0, blockchain.Genesis())
	require.NoError(t, err)
	assert.Equal(t, "[]", genesis.Data)
	restored, err := genesis.Block()
	require.NoError(t, err)
	assert.Equal(t, blockchain.Genesis(), restored)

	w, err := wallet.New(nil)
	require.NoError(t, err)
	block, err := blockchain.MineBlock(context.Background(), blockchain.Genesis(), []wallet.Transaction{wallet.RewardTransaction(w)}, 1)
	require.NoError(t, err)
	entry, err := NewBlockSQLEntry(1, block)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Height)
	restored, err = entry.Block()
	require.NoError(t, err)
	assert.Equal(t, block, restored)
	assert.NoError(t, blockchain.IsValidBlock(blockchain.Genesis(), restored))
}

func TestBlockSQLEntry_InvalidData(t *testing.T) {
	_, err := BlockSQLEntry{Data: "{"}.Block()
	assert.Error(t, err)
}
