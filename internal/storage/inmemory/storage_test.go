package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage/errors"
)

type StorageTestSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	chain   []blockchain.Block
}

func (suite *StorageTestSuite) SetupTest() {
	suite.storage = InitStorage()
	suite.ctx = context.Background()
	bc := blockchain.New()
	for i := 0; i < 2; i++ {
		_, err := bc.AddBlock(suite.ctx, nil, 1)
		suite.Require().NoError(err)
	}
	suite.chain = bc.Chain()
}

func TestStorageTestSuite(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}

func (suite *StorageTestSuite) TestDumpAndRetrieveAll() {
	for height, block := range suite.chain {
		require.NoError(suite.T(), suite.storage.Dump(suite.ctx, height, block))
	}
	blocks, err := suite.storage.RetrieveAll(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.chain, blocks)
}

func (suite *StorageTestSuite) TestDump_AlreadyExists() {
	require.NoError(suite.T(), suite.storage.Dump(suite.ctx, 0, suite.chain[0]))
	err := suite.storage.Dump(suite.ctx, 0, suite.chain[1])
	var alreadyExists errors.StorageAlreadyExistsError
	assert.ErrorAs(suite.T(), err, &alreadyExists)
	assert.Equal(suite.T(), 0, alreadyExists.Height)
}

func (suite *StorageTestSuite) TestReplace() {
	require.NoError(suite.T(), suite.storage.Dump(suite.ctx, 0, suite.chain[0]))
	require.NoError(suite.T(), suite.storage.Replace(suite.ctx, suite.chain))
	blocks, err := suite.storage.RetrieveAll(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.chain, blocks)
	assert.NoError(suite.T(), suite.storage.Dump(suite.ctx, len(suite.chain), suite.chain[0]))
}

func (suite *StorageTestSuite) TestRetrieveAll_Empty() {
	blocks, err := suite.storage.RetrieveAll(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), blocks)
}

func (suite *StorageTestSuite) TestPingAndClose() {
	assert.NoError(suite.T(), suite.storage.PingDB(suite.ctx))
	assert.NoError(suite.T(), suite.storage.CloseDB())
}
