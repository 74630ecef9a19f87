package webui

import (
	"context"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/nodeclient"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/modelnode"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

// Check interface implementation explicitly
var (
	_ Backend = (*nodeclient.Client)(nil)
)

// Backend defines the node API used by the views.
type Backend interface {
	WalletInfo(ctx context.Context) (modelnode.WalletInfo, error)
	BlockchainRange(ctx context.Context, start, end int) ([]blockchain.Block, error)
	BlockchainLength(ctx context.Context) (int, error)
	KnownAddresses(ctx context.Context) ([]string, error)
	Transactions(ctx context.Context) ([]wallet.Transaction, error)
	Transact(ctx context.Context, recipient string, amount int64) (wallet.Transaction, error)
	Mine(ctx context.Context) (blockchain.Block, error)
}
