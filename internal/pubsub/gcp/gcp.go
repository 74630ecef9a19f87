// Package gcp provides a PubSub backend over Google Cloud Pub/Sub. Every channel maps to a
// topic and every node owns one subscription per topic.
package gcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	nodepubsub "github.com/danilovkiri/dk_go_cryptochain/internal/pubsub"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

// senderAttribute carries the publishing node id so that nodes drop their own messages.
const senderAttribute = "sender"

// Check interface implementation explicitly
var (
	_ nodepubsub.PubSub = (*PubSub)(nil)
)

// PubSub struct defines data structure handling and provides support for adding new implementations.
type PubSub struct {
	nodeID string
	client *pubsub.Client
	topics map[string]*pubsub.Topic
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New connects to Cloud Pub/Sub in projectID and makes sure a topic exists for every channel.
func New(ctx context.Context, projectID, nodeID string, opts ...option.ClientOption) (*PubSub, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}
	ps := &PubSub{
		nodeID: nodeID,
		client: client,
		topics: make(map[string]*pubsub.Topic, len(nodepubsub.Channels)),
	}
	for _, channel := range nodepubsub.Channels {
		topic, err := ps.initTopic(ctx, channel)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		ps.topics[channel] = topic
	}
	return ps, nil
}

// NodeID returns the id the node publishes under.
func (ps *PubSub) NodeID() string {
	return ps.nodeID
}

// Publish sends v encoded as JSON to channel and waits for the server acknowledgement.
func (ps *PubSub) Publish(ctx context.Context, channel string, v interface{}) error {
	topic, ok := ps.topics[channel]
	if !ok {
		return fmt.Errorf("unknown channel %q", channel)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	result := topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{senderAttribute: ps.nodeID},
	})
	id, err := result.Get(ctx)
	if err != nil {
		return err
	}
	zap.L().Debug("message published", zap.String("channel", channel), zap.String("id", id))
	return nil
}

// BroadcastBlock publishes a newly mined block.
func (ps *PubSub) BroadcastBlock(ctx context.Context, block blockchain.Block) error {
	return ps.Publish(ctx, nodepubsub.ChannelBlock, block)
}

// BroadcastTransaction publishes a new or updated transaction.
func (ps *PubSub) BroadcastTransaction(ctx context.Context, transaction wallet.Transaction) error {
	return ps.Publish(ctx, nodepubsub.ChannelTransaction, transaction)
}

// Subscribe creates the node subscriptions if needed and receives messages in the background
// until ctx is done or Close is called. Messages are acknowledged even when h rejects them.
func (ps *PubSub) Subscribe(ctx context.Context, h nodepubsub.Handler) error {
	subs := make(map[string]*pubsub.Subscription, len(ps.topics))
	for _, channel := range nodepubsub.Channels {
		sub, err := ps.initSubscription(ctx, channel)
		if err != nil {
			return err
		}
		subs[channel] = sub
	}
	ctx, ps.cancel = context.WithCancel(ctx)
	for channel, sub := range subs {
		ps.wg.Add(1)
		go func(channel string, sub *pubsub.Subscription) {
			defer ps.wg.Done()
			err := sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
				m.Ack()
				if m.Attributes[senderAttribute] == ps.nodeID {
					return
				}
				if err := nodepubsub.Dispatch(ctx, h, channel, m.Data); err != nil {
					zap.L().Warn("message rejected",
						zap.String("channel", channel),
						zap.String("sender", m.Attributes[senderAttribute]),
						zap.Error(err))
				}
			})
			if err != nil {
				zap.L().Error("receiving messages", zap.String("channel", channel), zap.Error(err))
			}
		}(channel, sub)
	}
	zap.L().Info("subscribed to channels", zap.String("node", ps.nodeID), zap.Strings("channels", nodepubsub.Channels))
	return nil
}

// Close stops receiving, flushes pending publishes and closes the client.
func (ps *PubSub) Close() error {
	if ps.cancel != nil {
		ps.cancel()
	}
	ps.wg.Wait()
	for _, topic := range ps.topics {
		topic.Stop()
	}
	return ps.client.Close()
}

func (ps *PubSub) initTopic(ctx context.Context, channel string) (*pubsub.Topic, error) {
	topic := ps.client.Topic(channel)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return topic, nil
	}
	created, err := ps.client.CreateTopic(ctx, channel)
	if status.Code(err) == codes.AlreadyExists {
		// another node created it in the meantime
		return topic, nil
	}
	return created, err
}

func (ps *PubSub) initSubscription(ctx context.Context, channel string) (*pubsub.Subscription, error) {
	subID := fmt.Sprintf("%s-%s", channel, ps.nodeID)
	sub := ps.client.Subscription(subID)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return sub, nil
	}
	return ps.client.CreateSubscription(ctx, subID, pubsub.SubscriptionConfig{Topic: ps.topics[channel]})
}
