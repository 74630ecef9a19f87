// Package node provides interfaces for types to be in compliance with.
package node

import (
	"context"
	"time"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/pubsub"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/modelnode"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

// Processor defines a set of methods for types implementing Processor.
type Processor interface {
	pubsub.Handler
	Blockchain() []blockchain.Block
	BlockchainRange(start, end int) []blockchain.Block
	BlockchainLength() int
	Mine(ctx context.Context) (blockchain.Block, error)
	Transact(ctx context.Context, recipient string, amount int64) (wallet.Transaction, error)
	WalletInfo() modelnode.WalletInfo
	KnownAddresses() []string
	Transactions() []wallet.Transaction
	Stats() modelnode.Stats
	ReplaceChain(ctx context.Context, chain []blockchain.Block) error
	PingDB(ctx context.Context) error
	Uptime() time.Duration
}
