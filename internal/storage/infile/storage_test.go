package infile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage/errors"
)

type StorageTestSuite struct {
	suite.Suite
	path    string
	ctx     context.Context
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	storage *Storage
	chain   []blockchain.Block
}

func (suite *StorageTestSuite) SetupTest() {
	suite.path = filepath.Join(suite.T().TempDir(), "chain.jsonl")
	suite.ctx, suite.cancel = context.WithCancel(context.Background())
	suite.wg = &sync.WaitGroup{}
	var err error
	suite.storage, err = InitStorage(suite.ctx, suite.wg, suite.path)
	suite.Require().NoError(err)

	bc := blockchain.New()
	for i := 0; i < 2; i++ {
		_, err := bc.AddBlock(context.Background(), nil, 1)
		suite.Require().NoError(err)
	}
	suite.chain = bc.Chain()
}

func (suite *StorageTestSuite) TearDownTest() {
	suite.cancel()
	suite.wg.Wait()
}

func TestStorageTestSuite(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}

// reopen closes the current storage and restores a new one from the same file.
func (suite *StorageTestSuite) reopen() *Storage {
	suite.cancel()
	suite.wg.Wait()
	suite.ctx, suite.cancel = context.WithCancel(context.Background())
	st, err := InitStorage(suite.ctx, suite.wg, suite.path)
	suite.Require().NoError(err)
	return st
}

func (suite *StorageTestSuite) TestDumpAndRestore() {
	for height, block := range suite.chain {
		require.NoError(suite.T(), suite.storage.Dump(context.Background(), height, block))
	}
	content, err := os.ReadFile(suite.path)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), len(suite.chain), strings.Count(string(content), "\n"))

	restored := suite.reopen()
	blocks, err := restored.RetrieveAll(context.Background())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.chain, blocks)
}

func (suite *StorageTestSuite) TestDump_AlreadyExists() {
	require.NoError(suite.T(), suite.storage.Dump(context.Background(), 0, suite.chain[0]))
	err := suite.storage.Dump(context.Background(), 0, suite.chain[0])
	assert.ErrorAs(suite.T(), err, &errors.StorageAlreadyExistsError{})
}

func (suite *StorageTestSuite) TestReplace() {
	require.NoError(suite.T(), suite.storage.Dump(context.Background(), 0, suite.chain[0]))
	require.NoError(suite.T(), suite.storage.Replace(context.Background(), suite.chain))
	require.NoError(suite.T(), suite.storage.Dump(context.Background(), len(suite.chain), suite.chain[1]))

	restored := suite.reopen()
	blocks, err := restored.RetrieveAll(context.Background())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), append(suite.chain, suite.chain[1]), blocks)
	_, err = os.Stat(suite.path + ".tmp")
	assert.True(suite.T(), os.IsNotExist(err))
}

func (suite *StorageTestSuite) TestDump_ContextCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := suite.storage.Dump(ctx, 0, suite.chain[0])
	if err != nil {
		assert.ErrorAs(suite.T(), err, &errors.ContextTimeoutExceededError{})
	}
}

func TestInitStorage_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0644))
	_, err := InitStorage(context.Background(), &sync.WaitGroup{}, path)
	assert.Error(t, err)
}
