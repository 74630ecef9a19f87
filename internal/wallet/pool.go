package wallet

import (
	"sort"
	"sync"
)

// TransactionPool holds transactions not yet recorded on the blockchain.
type TransactionPool struct {
	mu             sync.RWMutex
	transactionMap map[string]Transaction
}

// NewTransactionPool initializes an empty TransactionPool.
func NewTransactionPool() *TransactionPool {
	return &TransactionPool{transactionMap: make(map[string]Transaction)}
}

// SetTransaction adds a transaction to the pool or replaces the one with the same ID.
func (p *TransactionPool) SetTransaction(t Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactionMap[t.ID] = t.Clone()
}

// Transaction returns a copy of the pooled transaction with the given ID.
func (p *TransactionPool) Transaction(id string) (Transaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.transactionMap[id]
	if !ok {
		return Transaction{}, false
	}
	return t.Clone(), true
}

// ExistingTransaction returns a copy of the pooled transaction conducted by address.
func (p *TransactionPool) ExistingTransaction(address string) (Transaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, t := range p.transactionMap {
		if t.Input.Address == address {
			return t.Clone(), true
		}
	}
	return Transaction{}, false
}

// TransactionData returns copies of all pooled transactions ordered by input timestamp.
func (p *TransactionPool) TransactionData() []Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data := make([]Transaction, 0, len(p.transactionMap))
	for _, t := range p.transactionMap {
		data = append(data, t.Clone())
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Input.Timestamp == data[j].Input.Timestamp {
			return data[i].ID < data[j].ID
		}
		return data[i].Input.Timestamp < data[j].Input.Timestamp
	})
	return data
}

// ClearBlockchainTransactions removes every transaction already recorded in blockData.
func (p *TransactionPool) ClearBlockchainTransactions(blockData [][]Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, transactions := range blockData {
		for _, t := range transactions {
			delete(p.transactionMap, t.ID)
		}
	}
}

// Len returns the number of pooled transactions.
func (p *TransactionPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.transactionMap)
}
