// Package pubsub provides interfaces and helpers for broadcasting blocks and transactions
// between nodes of the network.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/speps/go-hashids/v2"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

// Channels every node subscribes to.
const (
	ChannelTest        = "TEST"
	ChannelBlock       = "BLOCK"
	ChannelTransaction = "TRANSACTION"
)

// Channels lists every channel in subscription order.
var Channels = []string{ChannelTest, ChannelBlock, ChannelTransaction}

const (
	nodeIDSalt      = "cryptochain node"
	nodeIDMinLength = 8
)

// Broadcaster defines a set of methods for types publishing node events to the network.
type Broadcaster interface {
	BroadcastBlock(ctx context.Context, block blockchain.Block) error
	BroadcastTransaction(ctx context.Context, transaction wallet.Transaction) error
}

// Handler defines a set of methods for types consuming node events from the network.
type Handler interface {
	HandleBlock(ctx context.Context, block blockchain.Block) error
	HandleTransaction(ctx context.Context, transaction wallet.Transaction) error
}

// PubSub defines a set of methods for types implementing a network broadcast backend.
type PubSub interface {
	Broadcaster
	// Publish sends v encoded as JSON to channel.
	Publish(ctx context.Context, channel string, v interface{}) error
	// Subscribe starts delivering messages of other nodes to h until ctx is done or Close is called.
	Subscribe(ctx context.Context, h Handler) error
	Close() error
}

// NewNodeID returns a short random identifier distinguishing a node on the network.
func NewNodeID() (string, error) {
	hd := hashids.NewData()
	hd.Salt = nodeIDSalt
	hd.MinLength = nodeIDMinLength
	hashID, err := hashids.NewWithData(hd)
	if err != nil {
		return "", err
	}
	return hashID.EncodeInt64([]int64{time.Now().UnixNano(), rand.Int63()})
}

// Dispatch decodes a message received on channel and hands it to h.
func Dispatch(ctx context.Context, h Handler, channel string, data []byte) error {
	switch channel {
	case ChannelTest:
		zap.L().Info("test message received", zap.ByteString("data", data))
		return nil
	case ChannelBlock:
		var block blockchain.Block
		if err := json.Unmarshal(data, &block); err != nil {
			return fmt.Errorf("decoding block: %w", err)
		}
		return h.HandleBlock(ctx, block)
	case ChannelTransaction:
		var transaction wallet.Transaction
		if err := json.Unmarshal(data, &transaction); err != nil {
			return fmt.Errorf("decoding transaction: %w", err)
		}
		return h.HandleTransaction(ctx, transaction)
	default:
		return fmt.Errorf("unknown channel %q", channel)
	}
}
