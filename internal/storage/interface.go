// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
)

// BlockSetter defines a set of methods for types implementing BlockSetter.
type BlockSetter interface {
	Dump(ctx context.Context, height int, block blockchain.Block) error
}

// ChainReplacer defines a set of methods for types implementing ChainReplacer.
type ChainReplacer interface {
	Replace(ctx context.Context, chain []blockchain.Block) error
}

// ChainGetter defines a set of methods for types implementing ChainGetter.
type ChainGetter interface {
	RetrieveAll(ctx context.Context) ([]blockchain.Block, error)
}

// Pinger defines a set of methods for types implementing Pinger.
type Pinger interface {
	PingDB(ctx context.Context) error
}

// Closer defines a set of methods for types implementing Closer.
type Closer interface {
	CloseDB() error
}

// BlockStorage defines a set of embedded interfaces for types implementing BlockStorage.
type BlockStorage interface {
	BlockSetter
	ChainReplacer
	ChainGetter
	Pinger
	Closer
}
