// Package infile provides functionality for dumping/retrieving blocks to/from a file storage
// holding one JSON encoded block per line.
package infile

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
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
	mu      sync.Mutex
	path    string
	blocks  []blockchain.Block
	file    *os.File
	encoder *json.Encoder
}

// InitStorage initializes a Storage object, restores blocks from the file at path and
// closes the file once ctx is done.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, path string) (*Storage, error) {
	st := Storage{
		path:   path,
		blocks: make([]blockchain.Block, 0),
	}
	err := st.restore()
	if err != nil {
		return nil, err
	}
	err = st.open()
	if err != nil {
		return nil, err
	}
	// listen for ctx cancellation followed by file storage closure,
	// use sync.WaitGroup to prevent goroutine premature termination when main exits
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := st.CloseDB(); err != nil {
			zap.L().Error("closing file storage", zap.Error(err))
			return
		}
		zap.L().Info("file storage closed successfully")
	}()
	return &st, nil
}

// Dump appends a block at the given height which must be the next free one.
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
		if err := s.encoder.Encode(block); err != nil {
			dumpError <- errors.StorageFileWriteError{Err: err}
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
		zap.L().Debug("block saved to file", zap.Int("height", height), zap.String("hash", block.Hash))
		return nil
	}
}

// Replace rewrites the file with a new chain. The new content is written to a temporary
// file first and renamed over the storage file.
func (s *Storage) Replace(ctx context.Context, chain []blockchain.Block) error {
	replaceDone := make(chan bool, 1)
	replaceError := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.rewrite(chain); err != nil {
			replaceError <- errors.StorageFileWriteError{Err: err}
			return
		}
		s.blocks = append(make([]blockchain.Block, 0, len(chain)), chain...)
		replaceDone <- true
	}()

	select {
	case <-ctx.Done():
		zap.L().Warn("replacing chain", zap.Error(ctx.Err()))
		return errors.ContextTimeoutExceededError{}
	case err := <-replaceError:
		zap.L().Warn("replacing chain", zap.Error(err))
		return err
	case <-replaceDone:
		zap.L().Info("chain replaced in file", zap.Int("length", len(chain)))
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

// PingDB is a mock for SQL DB pinger for infile DB handling.
func (s *Storage) PingDB(context.Context) error {
	return nil
}

// CloseDB closes the storage file.
func (s *Storage) CloseDB() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// restore fills the in-memory copy with blocks from file storage.
func (s *Storage) restore() error {
	file, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	// blocks carrying many transactions exceed the default token size
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var block blockchain.Block
		if err := json.Unmarshal(scanner.Bytes(), &block); err != nil {
			return err
		}
		s.blocks = append(s.blocks, block)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	zap.L().Info("file storage restored", zap.String("path", s.path), zap.Int("blocks", len(s.blocks)))
	return nil
}

// open opens the storage file for appending.
func (s *Storage) open() error {
	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	s.file = file
	s.encoder = json.NewEncoder(file)
	return nil
}

// rewrite replaces the storage file content with chain and reopens it for appending.
func (s *Storage) rewrite(chain []blockchain.Block) error {
	tmpPath := s.path + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	writer := bufio.NewWriter(tmp)
	encoder := json.NewEncoder(writer)
	for _, block := range chain {
		if err := encoder.Encode(block); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			return err
		}
		s.file = nil
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return err
	}
	return s.open()
}
