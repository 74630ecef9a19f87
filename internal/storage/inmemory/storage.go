// Package inmemory provides functionality for dumping/retrieving blocks to/from local
// storage implemented as a slice.
package inmemory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage/errors"
)

// Check interface implementation explicitly
var (
	_ storage.BlockStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu     sync.Mutex
	blocks []blockchain.Block
}

// InitStorage initializes a Storage object and sets its attributes.
func InitStorage() *Storage {
	return &Storage{blocks: make([]blockchain.Block, 0)}
}

// Dump stores a block at the given height which must be the next free one.
func (s *Storage) Dump(ctx context.Context, height int, block blockchain.Block) error {
	// create channels for listening to the go routine result
	dumpDone := make(chan bool, 1)
	dumpError := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if height != len(s.blocks) {
			dumpError <- errors.StorageAlreadyExistsError{Height: height}
			return
		}
		s.blocks = append(s.blocks, block)
		dumpDone <- true
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		zap.L().Warn("dumping block", zap.Error(ctx.Err()))
		return errors.ContextTimeoutExceededError{}
	case err := <-dumpError:
		zap.L().Warn("dumping block", zap.Error(err))
		return err
	case <-dumpDone:
		zap.L().Debug("block dumped", zap.Int("height", height), zap.String("hash", block.Hash))
		return nil
	}
}

// Replace swaps the stored chain for a new one.
func (s *Storage) Replace(ctx context.Context, chain []blockchain.Block) error {
	replaceDone := make(chan bool, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.blocks = append(make([]blockchain.Block, 0, len(chain)), chain...)
		replaceDone <- true
	}()

	select {
	case <-ctx.Done():
		zap.L().Warn("replacing chain", zap.Error(ctx.Err()))
		return errors.ContextTimeoutExceededError{}
	case <-replaceDone:
		zap.L().Debug("chain replaced", zap.Int("length", len(chain)))
		return nil
	}
}

// RetrieveAll returns every stored block ordered by height.
func (s *Storage) RetrieveAll(ctx context.Context) ([]blockchain.Block, error) {
	retrieveDone := make(chan []blockchain.Block, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		retrieveDone <- append(make([]blockchain.Block, 0, len(s.blocks)), s.blocks...)
	}()

	select {
	case <-ctx.Done():
		zap.L().Warn("retrieving chain", zap.Error(ctx.Err()))
		return nil, errors.ContextTimeoutExceededError{}
	case blocks := <-retrieveDone:
		return blocks, nil
	}
}

// PingDB is a mock for SQL DB pinger for inmemory DB handling.
func (s *Storage) PingDB(context.Context) error {
	return nil
}

// CloseDB is a mock for SQL DB closer for inmemory DB handling.
func (s *Storage) CloseDB() error {
	return nil
}
