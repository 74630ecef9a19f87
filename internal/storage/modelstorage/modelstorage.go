// Package modelstorage provides locally used types and their structure for storage objects.
package modelstorage

import (
	"encoding/json"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

// BlockSQLEntry is a row of the blocks table. Transactions are kept as a JSON document.
type BlockSQLEntry struct {
	Height     int    `db:"height"`
	Timestamp  int64  `db:"block_timestamp"`
	LastHash   string `db:"last_hash"`
	Hash       string `db:"hash"`
	Data       string `db:"data"`
	Difficulty int    `db:"difficulty"`
	Nonce      int64  `db:"nonce"`
}

// NewBlockSQLEntry converts a block at height into a table row.
func NewBlockSQLEntry(height int, block blockchain.Block) (BlockSQLEntry, error) {
	data := block.Data
	if data == nil {
		data = []wallet.Transaction{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return BlockSQLEntry{}, err
	}
	return BlockSQLEntry{
		Height:     height,
		Timestamp:  block.Timestamp,
		LastHash:   block.LastHash,
		Hash:       block.Hash,
		Data:       string(encoded),
		Difficulty: block.Difficulty,
		Nonce:      block.Nonce,
	}, nil
}

// Block converts a table row back into a block.
func (e BlockSQLEntry) Block() (blockchain.Block, error) {
	var data []wallet.Transaction
	if err := json.Unmarshal([]byte(e.Data), &data); err != nil {
		return blockchain.Block{}, err
	}
	if data == nil {
		data = []wallet.Transaction{}
	}
	return blockchain.Block{
		Timestamp:  e.Timestamp,
		LastHash:   e.LastHash,
		Hash:       e.Hash,
		Data:       data,
		Difficulty: e.Difficulty,
		Nonce:      e.Nonce,
	}, nil
}
