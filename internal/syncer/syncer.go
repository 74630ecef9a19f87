// Package syncer keeps a peer node in line with the root node of the network.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	serviceErrors "github.com/danilovkiri/dk_go_cryptochain/internal/service/errors"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

const defaultTimeout = 30 * time.Second

// Source defines the subset of the node client used to read the root node state.
type Source interface {
	Blockchain(ctx context.Context) ([]blockchain.Block, error)
	Transactions(ctx context.Context) ([]wallet.Transaction, error)
}

// Target defines the subset of the local node updated from the root node state.
type Target interface {
	ReplaceChain(ctx context.Context, chain []blockchain.Block) error
	HandleTransaction(ctx context.Context, transaction wallet.Transaction) error
}

// Syncer copies the root node chain and transaction pool into the local node.
type Syncer struct {
	source  Source
	target  Target
	timeout time.Duration
	mu      sync.Mutex
	cron    *cron.Cron
}

// New initializes a Syncer. A non-positive timeout falls back to the default one.
func New(source Source, target Target, timeout time.Duration) *Syncer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Syncer{
		source:  source,
		target:  target,
		timeout: timeout,
	}
}

// SyncOnce replaces the local chain with the root one and pools the root transactions.
// A root chain that is not longer than the local one is not an error.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	chain, err := s.source.Blockchain(ctx)
	if err != nil {
		return err
	}
	err = s.target.ReplaceChain(ctx, chain)
	switch {
	case err == nil:
		zap.L().Info("synced chain with root node", zap.Int("length", len(chain)))
	case errors.Is(err, blockchain.ErrChainTooShort):
		zap.L().Debug("root chain is not longer", zap.Int("length", len(chain)))
	default:
		return err
	}

	transactions, err := s.source.Transactions(ctx)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, transaction := range transactions {
		if err := s.target.HandleTransaction(ctx, transaction); err != nil {
			result = multierror.Append(result, &serviceErrors.ServiceInvalidTransactionError{Err: err})
		}
	}
	zap.L().Info("synced transaction pool with root node", zap.Int("transactions", len(transactions)))
	return result.ErrorOrNil()
}

// Start runs SyncOnce on the cron schedule until Stop is called.
func (s *Syncer) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return errors.New("syncer already started")
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, s.run)
	if err != nil {
		return err
	}
	c.Start()
	s.cron = c
	zap.L().Info("peer sync scheduled", zap.String("schedule", schedule))
	return nil
}

// Stop stops the schedule and waits for a running sync to complete.
func (s *Syncer) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
}

func (s *Syncer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.SyncOnce(ctx); err != nil {
		zap.L().Warn("scheduled peer sync", zap.Error(err))
	}
}
