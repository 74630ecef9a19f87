// Package blockchain provides blocks, proof-of-work mining and the public ledger built from them.
package blockchain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danilovkiri/dk_go_cryptochain/internal/cryptohash"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

// DefaultMineRate is the targeted time between two mined blocks.
const DefaultMineRate = 4 * time.Second

var (
	ErrInvalidLastHash  = errors.New("last hash must be correct")
	ErrProofOfWork      = errors.New("proof of work requirement was not met")
	ErrDifficultyJump   = errors.New("block difficulty must only adjust by 1")
	ErrInvalidBlockHash = errors.New("block hash must be correct")
)

// Block is a unit of storage recording a batch of transactions on the blockchain.
type Block struct {
	Timestamp  int64                `json:"timestamp"`
	LastHash   string               `json:"last_hash"`
	Hash       string               `json:"hash"`
	Data       []wallet.Transaction `json:"data"`
	Difficulty int                  `json:"difficulty"`
	Nonce      int64                `json:"nonce"`
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	if b.Data == nil {
		return b
	}
	data := make([]wallet.Transaction, len(b.Data))
	for i, t := range b.Data {
		data[i] = t.Clone()
	}
	b.Data = data
	return b
}

// Genesis returns the hard coded first block of every chain.
func Genesis() Block {
	return Block{
		Timestamp:  1,
		LastHash:   "genesis_last_hash",
		Hash:       "genesis_hash",
		Data:       []wallet.Transaction{},
		Difficulty: 3,
		Nonce:      0,
	}
}

// MineBlock mines a block after last holding data, searching for a hash that meets the difficulty.
func MineBlock(ctx context.Context, last Block, data []wallet.Transaction, mineRate time.Duration) (Block, error) {
	if data == nil {
		data = []wallet.Transaction{}
	}
	var nonce int64
	for {
		// poll ctx once every 1024 attempts
		if nonce%1024 == 0 {
			select {
			case <-ctx.Done():
				return Block{}, ctx.Err()
			default:
			}
		}
		nonce++
		timestamp := time.Now().UnixNano()
		difficulty := AdjustDifficulty(last, timestamp, mineRate)
		hash := hashBlock(timestamp, last.Hash, data, difficulty, nonce)
		if cryptohash.HasLeadingZeros(hash, difficulty) {
			return Block{
				Timestamp:  timestamp,
				LastHash:   last.Hash,
				Hash:       hash,
				Data:       data,
				Difficulty: difficulty,
				Nonce:      nonce,
			}, nil
		}
	}
}

// AdjustDifficulty returns the difficulty of a block mined at timestamp after last.
func AdjustDifficulty(last Block, timestamp int64, mineRate time.Duration) int {
	if timestamp-last.Timestamp < mineRate.Nanoseconds() {
		return last.Difficulty + 1
	}
	if last.Difficulty-1 > 0 {
		return last.Difficulty - 1
	}
	return 1
}

// IsValidBlock returns an error if block cannot follow last.
func IsValidBlock(last, block Block) error {
	if block.LastHash != last.Hash {
		return fmt.Errorf("%s: %w", block.Hash, ErrInvalidLastHash)
	}
	if block.Difficulty < 1 || !cryptohash.HasLeadingZeros(block.Hash, block.Difficulty) {
		return fmt.Errorf("%s: %w", block.Hash, ErrProofOfWork)
	}
	if diff := last.Difficulty - block.Difficulty; diff > 1 || diff < -1 {
		return fmt.Errorf("%s: %w", block.Hash, ErrDifficultyJump)
	}
	if hashBlock(block.Timestamp, block.LastHash, block.Data, block.Difficulty, block.Nonce) != block.Hash {
		return fmt.Errorf("%s: %w", block.Hash, ErrInvalidBlockHash)
	}
	return nil
}

// isGenesis reports whether block equals the genesis block.
func isGenesis(block Block) bool {
	genesis := Genesis()
	return block.Timestamp == genesis.Timestamp &&
		block.LastHash == genesis.LastHash &&
		block.Hash == genesis.Hash &&
		len(block.Data) == 0 &&
		block.Difficulty == genesis.Difficulty &&
		block.Nonce == genesis.Nonce
}

func hashBlock(timestamp int64, lastHash string, data []wallet.Transaction, difficulty int, nonce int64) string {
	// nil and empty data hash alike
	if data == nil {
		data = []wallet.Transaction{}
	}
	return cryptohash.CryptoHash(timestamp, lastHash, data, difficulty, nonce)
}
