// Package local provides an in-process PubSub backend connecting nodes that share a Bus.
package local

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/pubsub"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

// Check interface implementation explicitly
var (
	_ pubsub.PubSub = (*Client)(nil)
)

// Bus fans messages out to every joined client except the sender.
type Bus struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewBus initializes an empty Bus.
func NewBus() *Bus {
	return &Bus{clients: make(map[string]*Client)}
}

// Join attaches a node to the bus.
func (b *Bus) Join(nodeID string) *Client {
	c := &Client{bus: b, nodeID: nodeID}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[nodeID] = c
	return c
}

func (b *Bus) leave(nodeID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, nodeID)
}

// deliver hands a message to every subscribed client other than sender. Delivery is
// synchronous and handler errors are logged.
func (b *Bus) deliver(ctx context.Context, sender, channel string, data []byte) {
	b.mu.RLock()
	receivers := make([]*Client, 0, len(b.clients))
	for nodeID, c := range b.clients {
		if nodeID != sender {
			receivers = append(receivers, c)
		}
	}
	b.mu.RUnlock()
	for _, c := range receivers {
		h := c.currentHandler()
		if h == nil {
			continue
		}
		if err := pubsub.Dispatch(ctx, h, channel, data); err != nil {
			zap.L().Warn("message rejected",
				zap.String("node", c.nodeID),
				zap.String("sender", sender),
				zap.String("channel", channel),
				zap.Error(err))
		}
	}
}

// Client is the handle of a single node on a Bus.
type Client struct {
	bus     *Bus
	nodeID  string
	mu      sync.RWMutex
	handler pubsub.Handler
}

// Publish sends v encoded as JSON to channel.
func (c *Client) Publish(ctx context.Context, channel string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.bus.deliver(ctx, c.nodeID, channel, data)
	return nil
}

// BroadcastBlock publishes a newly mined block.
func (c *Client) BroadcastBlock(ctx context.Context, block blockchain.Block) error {
	return c.Publish(ctx, pubsub.ChannelBlock, block)
}

// BroadcastTransaction publishes a new or updated transaction.
func (c *Client) BroadcastTransaction(ctx context.Context, transaction wallet.Transaction) error {
	return c.Publish(ctx, pubsub.ChannelTransaction, transaction)
}

// Subscribe registers h until ctx is done.
func (c *Client) Subscribe(ctx context.Context, h pubsub.Handler) error {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
	go func() {
		<-ctx.Done()
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.handler == h {
			c.handler = nil
		}
	}()
	return nil
}

// Close detaches the client from its bus.
func (c *Client) Close() error {
	c.bus.leave(c.nodeID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = nil
	return nil
}

func (c *Client) currentHandler() pubsub.Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handler
}
