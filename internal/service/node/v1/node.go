// Package node provides the node service coordinating the chain, the transaction pool, the
// wallet, block storage and network broadcast.
package node

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/metrics"
	"github.com/danilovkiri/dk_go_cryptochain/internal/pubsub"
	serviceErrors "github.com/danilovkiri/dk_go_cryptochain/internal/service/errors"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/modelnode"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/node"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_cryptochain/internal/storage/errors"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

const (
	seedBlocks       = 10
	seedTransactions = 3
	seedMaxAmount    = 50
)

// Check interface implementation explicitly
var (
	_ node.Processor = (*Node)(nil)
)

// Options holds tunables of a Node.
type Options struct {
	MineRate time.Duration
}

// Node struct defines data structure handling and provides support for adding new implementations.
type Node struct {
	// chainMu serializes chain mutations together with their persistence
	chainMu sync.Mutex
	// poolMu guards pool changes; taken after chainMu and held while mining
	poolMu      sync.Mutex
	blockchain  *blockchain.Blockchain
	pool        *wallet.TransactionPool
	wallet      *wallet.Wallet
	storage     storage.BlockStorage
	broadcaster pubsub.Broadcaster
	metrics     *metrics.Metrics
	mineRate    time.Duration
	started     time.Time
}

// InitNode initializes a Node object restoring the chain from storage. An empty storage is
// seeded with the genesis block; a stored chain that fails validation is an error.
func InitNode(ctx context.Context, st storage.BlockStorage, b pubsub.Broadcaster, key *secp256k1.PrivateKey, m *metrics.Metrics, opts Options) (*Node, error) {
	if st == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if b == nil {
		return nil, &serviceErrors.ServiceFoundNilBroadcaster{Msg: "nil broadcaster was passed to service initializer"}
	}
	if key == nil {
		return nil, &serviceErrors.ServiceFoundNilKey{Msg: "nil private key was passed to service initializer"}
	}
	if opts.MineRate <= 0 {
		opts.MineRate = blockchain.DefaultMineRate
	}
	bc, err := restoreChain(ctx, st)
	if err != nil {
		return nil, err
	}
	n := &Node{
		blockchain:  bc,
		pool:        wallet.NewTransactionPool(),
		wallet:      wallet.FromPrivateKey(key, bc),
		storage:     st,
		broadcaster: b,
		metrics:     m,
		mineRate:    opts.MineRate,
		started:     time.Now(),
	}
	n.updateMetrics()
	zap.L().Info("node initialized",
		zap.String("address", n.wallet.Address),
		zap.Int("chain_length", bc.Len()),
		zap.Duration("mine_rate", n.mineRate))
	return n, nil
}

func restoreChain(ctx context.Context, st storage.BlockStorage) (*blockchain.Blockchain, error) {
	blocks, err := st.RetrieveAll(ctx)
	if err != nil {
		return nil, &serviceErrors.ServiceStorageError{Op: "retrieving chain", Err: err}
	}
	if len(blocks) == 0 {
		bc := blockchain.New()
		if err := st.Dump(ctx, 0, bc.Last()); err != nil {
			return nil, &serviceErrors.ServiceStorageError{Op: "dumping genesis block", Err: err}
		}
		return bc, nil
	}
	bc, err := blockchain.FromBlocks(blocks)
	if err != nil {
		return nil, &serviceErrors.ServiceRestoreChainError{Err: err}
	}
	return bc, nil
}

// Blockchain returns the whole chain.
func (n *Node) Blockchain() []blockchain.Block {
	return n.blockchain.Chain()
}

// BlockchainRange returns the blocks in [start, end) counted from the newest block.
func (n *Node) BlockchainRange(start, end int) []blockchain.Block {
	return n.blockchain.Range(start, end)
}

// BlockchainLength returns the number of blocks.
func (n *Node) BlockchainLength() int {
	return n.blockchain.Len()
}

// Mine mines the pooled transactions together with a reward for the node wallet, persists and
// broadcasts the block and clears the mined transactions from the pool.
func (n *Node) Mine(ctx context.Context) (blockchain.Block, error) {
	block, err := n.mine(ctx)
	if err != nil {
		return blockchain.Block{}, err
	}
	zap.L().Info("block mined",
		zap.String("hash", block.Hash),
		zap.Int("difficulty", block.Difficulty),
		zap.Int("transactions", len(block.Data)))
	if err := n.broadcaster.BroadcastBlock(ctx, block); err != nil {
		zap.L().Warn("broadcasting block", zap.String("hash", block.Hash), zap.Error(err))
	}
	return block, nil
}

func (n *Node) mine(ctx context.Context) (blockchain.Block, error) {
	n.chainMu.Lock()
	defer n.chainMu.Unlock()
	n.poolMu.Lock()
	defer n.poolMu.Unlock()
	data := append(n.validPoolData(), wallet.RewardTransaction(n.wallet))
	block, err := n.blockchain.AddBlock(ctx, data, n.mineRate)
	if err != nil {
		return blockchain.Block{}, err
	}
	n.pool.ClearBlockchainTransactions([][]wallet.Transaction{block.Data})
	n.metrics.BlockMined()
	n.updateMetrics()
	if err := n.persistBlock(ctx, block); err != nil {
		return blockchain.Block{}, err
	}
	return block, nil
}

// validPoolData returns the pooled transactions that can be recorded on the chain and drops
// the rest from the pool. Must be called with poolMu held.
func (n *Node) validPoolData() []wallet.Transaction {
	pooled := n.pool.TransactionData()
	valid := make([]wallet.Transaction, 0, len(pooled))
	var dropped []wallet.Transaction
	for _, transaction := range pooled {
		if err := n.blockchain.ValidatePending(transaction); err != nil {
			zap.L().Warn("dropping pooled transaction", zap.String("id", transaction.ID), zap.Error(err))
			dropped = append(dropped, transaction)
			continue
		}
		valid = append(valid, transaction)
	}
	if len(dropped) > 0 {
		n.pool.ClearBlockchainTransactions([][]wallet.Transaction{dropped})
		n.updateMetrics()
	}
	return valid
}

// Transact sends amount to recipient from the node wallet. A transaction of the wallet already
// waiting in the pool is updated instead of creating a new one.
func (n *Node) Transact(ctx context.Context, recipient string, amount int64) (wallet.Transaction, error) {
	n.poolMu.Lock()
	transaction, ok := n.pool.ExistingTransaction(n.wallet.Address)
	if ok && transaction.Input.Amount != n.wallet.Balance() {
		// the chain changed since the transaction was signed
		zap.L().Warn("dropping outdated wallet transaction", zap.String("id", transaction.ID))
		n.pool.ClearBlockchainTransactions([][]wallet.Transaction{{transaction}})
		ok = false
	}
	var err error
	if ok {
		transaction = transaction.Clone()
		err = transaction.Update(n.wallet, recipient, amount)
	} else {
		var created *wallet.Transaction
		created, err = wallet.NewTransaction(n.wallet, recipient, amount)
		if created != nil {
			transaction = *created
		}
	}
	if err != nil {
		n.poolMu.Unlock()
		return wallet.Transaction{}, &serviceErrors.ServiceInvalidTransactionError{Err: err}
	}
	n.pool.SetTransaction(transaction)
	n.poolMu.Unlock()

	n.metrics.TransactionConducted()
	n.updateMetrics()
	zap.L().Info("transaction conducted",
		zap.String("id", transaction.ID),
		zap.String("recipient", recipient),
		zap.Int64("amount", amount),
		zap.Bool("updated", ok))
	if err := n.broadcaster.BroadcastTransaction(ctx, transaction); err != nil {
		zap.L().Warn("broadcasting transaction", zap.String("id", transaction.ID), zap.Error(err))
	}
	return transaction, nil
}

// WalletInfo returns the node wallet address and balance.
func (n *Node) WalletInfo() modelnode.WalletInfo {
	return modelnode.WalletInfo{
		Address: n.wallet.Address,
		Balance: n.wallet.Balance(),
	}
}

// KnownAddresses returns every address that received an output on the chain.
func (n *Node) KnownAddresses() []string {
	return n.blockchain.KnownAddresses()
}

// Transactions returns the pooled transactions.
func (n *Node) Transactions() []wallet.Transaction {
	return n.pool.TransactionData()
}

// Stats returns the size of the node state.
func (n *Node) Stats() modelnode.Stats {
	return modelnode.Stats{
		ChainLength:    n.blockchain.Len(),
		PoolSize:       n.pool.Len(),
		KnownAddresses: len(n.blockchain.KnownAddresses()),
	}
}

// ReplaceChain replaces the local chain with a longer valid one, persists it and clears the
// transactions it carries from the pool.
func (n *Node) ReplaceChain(ctx context.Context, chain []blockchain.Block) error {
	n.chainMu.Lock()
	defer n.chainMu.Unlock()
	n.poolMu.Lock()
	defer n.poolMu.Unlock()
	if err := n.blockchain.ReplaceChain(chain); err != nil {
		n.metrics.ChainReplaced(false)
		return &serviceErrors.ServiceChainRejectedError{Err: err}
	}
	n.metrics.ChainReplaced(true)
	n.pool.ClearBlockchainTransactions(n.blockchain.Data())
	n.updateMetrics()
	zap.L().Info("chain replaced", zap.Int("length", len(chain)))
	if err := n.storage.Replace(ctx, chain); err != nil {
		return &serviceErrors.ServiceStorageError{Op: "replacing chain", Err: err}
	}
	return nil
}

// HandleBlock tries to extend the local chain with a block mined by another node.
func (n *Node) HandleBlock(ctx context.Context, block blockchain.Block) error {
	n.chainMu.Lock()
	defer n.chainMu.Unlock()
	n.poolMu.Lock()
	defer n.poolMu.Unlock()
	chain := append(n.blockchain.Chain(), block)
	if err := n.blockchain.ReplaceChain(chain); err != nil {
		n.metrics.ChainReplaced(false)
		zap.L().Warn("incoming block rejected", zap.String("hash", block.Hash), zap.Error(err))
		return &serviceErrors.ServiceChainRejectedError{Err: err}
	}
	n.metrics.ChainReplaced(true)
	n.pool.ClearBlockchainTransactions([][]wallet.Transaction{block.Data})
	n.updateMetrics()
	zap.L().Info("incoming block accepted", zap.String("hash", block.Hash), zap.Int("length", len(chain)))
	return n.persistBlock(ctx, block)
}

// HandleTransaction validates a transaction broadcast by another node and pools it. A
// transaction already recorded on the chain is rejected.
func (n *Node) HandleTransaction(_ context.Context, transaction wallet.Transaction) error {
	err := wallet.ValidateTransaction(transaction)
	if err == nil && transaction.IsReward() {
		err = wallet.ErrInvalidMiningReward
	}
	if err == nil {
		if pendingErr := n.blockchain.ValidatePending(transaction); errors.Is(pendingErr, blockchain.ErrDuplicateTransaction) {
			err = pendingErr
		}
	}
	if err != nil {
		zap.L().Warn("incoming transaction rejected", zap.String("id", transaction.ID), zap.Error(err))
		return &serviceErrors.ServiceInvalidTransactionError{Err: err}
	}
	n.poolMu.Lock()
	n.pool.SetTransaction(transaction)
	n.poolMu.Unlock()
	n.updateMetrics()
	zap.L().Debug("incoming transaction pooled", zap.String("id", transaction.ID))
	return nil
}

// PingDB checks the block storage.
func (n *Node) PingDB(ctx context.Context) error {
	return n.storage.PingDB(ctx)
}

// Uptime returns the time passed since the node was initialized.
func (n *Node) Uptime() time.Duration {
	return time.Since(n.started)
}

// Seed fills the chain with blocks of random transactions between throwaway wallets and the
// pool with a few more, giving a demo network something to show.
func (n *Node) Seed(ctx context.Context) error {
	for i := 0; i < seedBlocks; i++ {
		data := make([]wallet.Transaction, 0, 2)
		for j := 0; j < 2; j++ {
			transaction, err := n.seedTransaction()
			if err != nil {
				return err
			}
			data = append(data, transaction)
		}
		if err := n.seedBlock(ctx, data); err != nil {
			return err
		}
	}
	for i := 0; i < seedTransactions; i++ {
		transaction, err := n.seedTransaction()
		if err != nil {
			return err
		}
		n.poolMu.Lock()
		n.pool.SetTransaction(transaction)
		n.poolMu.Unlock()
	}
	n.updateMetrics()
	zap.L().Info("seed data created", zap.Int("blocks", seedBlocks), zap.Int("transactions", seedTransactions))
	return nil
}

func (n *Node) seedBlock(ctx context.Context, data []wallet.Transaction) error {
	n.chainMu.Lock()
	defer n.chainMu.Unlock()
	block, err := n.blockchain.AddBlock(ctx, data, n.mineRate)
	if err != nil {
		return err
	}
	return n.persistBlock(ctx, block)
}

func (n *Node) seedTransaction() (wallet.Transaction, error) {
	sender, err := wallet.New(n.blockchain)
	if err != nil {
		return wallet.Transaction{}, err
	}
	recipient, err := wallet.New(nil)
	if err != nil {
		return wallet.Transaction{}, err
	}
	transaction, err := wallet.NewTransaction(sender, recipient.Address, rand.Int63n(seedMaxAmount)+1)
	if err != nil {
		return wallet.Transaction{}, err
	}
	return *transaction, nil
}

// persistBlock dumps the newest block; if storage diverged from the chain the whole chain is
// written instead. Must be called with chainMu held.
func (n *Node) persistBlock(ctx context.Context, block blockchain.Block) error {
	height := n.blockchain.Len() - 1
	err := n.storage.Dump(ctx, height, block)
	if err == nil {
		return nil
	}
	var alreadyExists storageErrors.StorageAlreadyExistsError
	if !errors.As(err, &alreadyExists) {
		return &serviceErrors.ServiceStorageError{Op: "dumping block", Err: err}
	}
	zap.L().Warn("storage diverged from chain, rewriting", zap.Int("height", height))
	if err := n.storage.Replace(ctx, n.blockchain.Chain()); err != nil {
		return &serviceErrors.ServiceStorageError{Op: "replacing chain", Err: err}
	}
	return nil
}

func (n *Node) updateMetrics() {
	n.metrics.SetState(n.blockchain.Len(), n.pool.Len())
}
