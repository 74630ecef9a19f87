package blockchain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

var (
	ErrInvalidGenesis         = errors.New("the genesis block must be valid")
	ErrChainTooShort          = errors.New("the incoming chain must be longer")
	ErrStaleBlock             = errors.New("the chain changed while the block was mined")
	ErrDuplicateTransaction   = errors.New("transaction is not unique")
	ErrMultipleMiningRewards  = errors.New("there can only be one mining reward per block")
	ErrInvalidHistoricBalance = errors.New("transaction has an invalid input amount")
)

// Check interface implementation explicitly
var (
	_ wallet.Ledger = (*Blockchain)(nil)
)

// Blockchain is the public ledger of transactions implemented as a list of blocks.
type Blockchain struct {
	mu    sync.RWMutex
	chain []Block
}

// New initializes a Blockchain holding the genesis block only.
func New() *Blockchain {
	return &Blockchain{chain: []Block{Genesis()}}
}

// FromBlocks initializes a Blockchain from previously stored blocks, validating them first.
func FromBlocks(blocks []Block) (*Blockchain, error) {
	if err := IsValidChain(blocks); err != nil {
		return nil, err
	}
	if err := IsValidTransactionChain(blocks); err != nil {
		return nil, err
	}
	return &Blockchain{chain: cloneChain(blocks)}, nil
}

// AddBlock mines a block holding data and appends it to the chain. Data breaking the
// transaction rules of the chain is rejected before mining starts.
//
// Mining runs without holding the chain lock; ErrStaleBlock is returned if another
// block was appended or the chain was replaced in the meantime.
func (bc *Blockchain) AddBlock(ctx context.Context, data []wallet.Transaction, mineRate time.Duration) (Block, error) {
	bc.mu.RLock()
	history := bc.chain
	last := history[len(history)-1]
	err := validateBlockData(history, chainIDs(history), data)
	bc.mu.RUnlock()
	if err != nil {
		return Block{}, err
	}
	block, err := MineBlock(ctx, last, cloneData(data), mineRate)
	if err != nil {
		return Block{}, err
	}
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if bc.chain[len(bc.chain)-1].Hash != last.Hash {
		return Block{}, ErrStaleBlock
	}
	bc.chain = append(bc.chain, block)
	return block.Clone(), nil
}

// ValidatePending returns an error if a transaction waiting to be mined cannot be recorded
// on top of the current chain.
func (bc *Blockchain) ValidatePending(t wallet.Transaction) error {
	if t.IsReward() {
		return fmt.Errorf("%s: %w", t.ID, wallet.ErrInvalidMiningReward)
	}
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return validateBlockData(bc.chain, chainIDs(bc.chain), []wallet.Transaction{t})
}

// ReplaceChain replaces the local chain with the incoming one if it is longer and valid.
func (bc *Blockchain) ReplaceChain(chain []Block) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if len(chain) <= len(bc.chain) {
		return ErrChainTooShort
	}
	if err := IsValidChain(chain); err != nil {
		return err
	}
	if err := IsValidTransactionChain(chain); err != nil {
		return err
	}
	bc.chain = cloneChain(chain)
	return nil
}

// Chain returns a deep copy of the chain.
func (bc *Blockchain) Chain() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return cloneChain(bc.chain)
}

// Last returns a deep copy of the most recent block.
func (bc *Blockchain) Last() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.chain[len(bc.chain)-1].Clone()
}

// Len returns the number of blocks including the genesis block.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.chain)
}

// Range returns deep copies of the blocks in [start, end) of the chain ordered from the newest block.
func (bc *Blockchain) Range(start, end int) []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	n := len(bc.chain)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return []Block{}
	}
	blocks := make([]Block, 0, end-start)
	for i := n - 1 - start; i > n-1-end; i-- {
		blocks = append(blocks, bc.chain[i].Clone())
	}
	return blocks
}

// Data returns copies of the transactions of every block in chain order.
func (bc *Blockchain) Data() [][]wallet.Transaction {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	data := make([][]wallet.Transaction, 0, len(bc.chain))
	for _, block := range bc.chain {
		data = append(data, cloneData(block.Data))
	}
	return data
}

// Balance returns the balance of address according to the chain.
func (bc *Blockchain) Balance(address string) int64 {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return wallet.CalculateBalance(blockData(bc.chain), address)
}

// KnownAddresses returns every address that received an output on the chain, sorted.
func (bc *Blockchain) KnownAddresses() []string {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, transactions := range blockData(bc.chain) {
		for _, t := range transactions {
			for address := range t.Output {
				seen[address] = struct{}{}
			}
		}
	}
	addresses := make([]string, 0, len(seen))
	for address := range seen {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}

// IsValidChain returns an error if the chain does not start with the genesis block
// or any of its blocks is not valid.
func IsValidChain(chain []Block) error {
	if len(chain) == 0 || !isGenesis(chain[0]) {
		return ErrInvalidGenesis
	}
	for i := 1; i < len(chain); i++ {
		if err := IsValidBlock(chain[i-1], chain[i]); err != nil {
			return err
		}
	}
	return nil
}

// IsValidTransactionChain enforces the transaction rules of the chain:
// transactions are unique, every block holds at most one mining reward, input amounts
// match the historic balance of their sender and every transaction is valid.
func IsValidTransactionChain(chain []Block) error {
	ids := make(map[string]struct{})
	for i := 1; i < len(chain); i++ {
		if err := validateBlockData(chain[:i], ids, chain[i].Data); err != nil {
			return fmt.Errorf("%s: %w", chain[i].Hash, err)
		}
	}
	return nil
}

// validateBlockData checks the transactions of a block following history. ids holds the
// transaction ids recorded so far and receives the ids of data.
func validateBlockData(history []Block, ids map[string]struct{}, data []wallet.Transaction) error {
	hasMiningReward := false
	var historic [][]wallet.Transaction
	for _, t := range data {
		if _, ok := ids[t.ID]; ok {
			return fmt.Errorf("%s: %w", t.ID, ErrDuplicateTransaction)
		}
		ids[t.ID] = struct{}{}
		if t.IsReward() {
			if hasMiningReward {
				return fmt.Errorf("%s: %w", t.ID, ErrMultipleMiningRewards)
			}
			hasMiningReward = true
		} else {
			if historic == nil {
				historic = blockData(history)
			}
			if wallet.CalculateBalance(historic, t.Input.Address) != t.Input.Amount {
				return fmt.Errorf("%s: %w", t.ID, ErrInvalidHistoricBalance)
			}
		}
		if err := wallet.ValidateTransaction(t); err != nil {
			return err
		}
	}
	return nil
}

func chainIDs(chain []Block) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, block := range chain {
		for _, t := range block.Data {
			ids[t.ID] = struct{}{}
		}
	}
	return ids
}

func cloneChain(chain []Block) []Block {
	cloned := make([]Block, len(chain))
	for i, block := range chain {
		cloned[i] = block.Clone()
	}
	return cloned
}

func cloneData(data []wallet.Transaction) []wallet.Transaction {
	if data == nil {
		return nil
	}
	cloned := make([]wallet.Transaction, len(data))
	for i, t := range data {
		cloned[i] = t.Clone()
	}
	return cloned
}

func blockData(chain []Block) [][]wallet.Transaction {
	data := make([][]wallet.Transaction, 0, len(chain))
	for _, block := range chain {
		data = append(data, block.Data)
	}
	return data
}
