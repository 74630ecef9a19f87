package blockchain

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

// fixedLedger reports the same balance for every address.
type fixedLedger int64

func (l fixedLedger) Balance(string) int64 {
	return int64(l)
}

type BlockchainTestSuite struct {
	suite.Suite
	ctx        context.Context
	blockchain *Blockchain
	newChain   *Blockchain
	wallet     *wallet.Wallet
}

func (suite *BlockchainTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.blockchain = New()
	suite.newChain = New()
	var err error
	suite.wallet, err = wallet.New(suite.newChain)
	suite.Require().NoError(err)
}

// TestBlockchainTestSuite initializes test suite for being accessible
func TestBlockchainTestSuite(t *testing.T) {
	suite.Run(t, new(BlockchainTestSuite))
}

// validTransactionData returns a signed transaction together with a mining reward.
func (suite *BlockchainTestSuite) validTransactionData() []wallet.Transaction {
	tx, err := wallet.NewTransaction(suite.wallet, "recipient", 65)
	suite.Require().NoError(err)
	return []wallet.Transaction{*tx, wallet.RewardTransaction(suite.wallet)}
}

func (suite *BlockchainTestSuite) mine(bc *Blockchain, data []wallet.Transaction) Block {
	block, err := bc.AddBlock(suite.ctx, data, testMineRate)
	suite.Require().NoError(err)
	return block
}

// forge appends a mined block to bc without checking its transactions.
func (suite *BlockchainTestSuite) forge(bc *Blockchain, data []wallet.Transaction) Block {
	block, err := MineBlock(suite.ctx, bc.Last(), data, testMineRate)
	suite.Require().NoError(err)
	bc.chain = append(bc.chain, block)
	return block
}

func (suite *BlockchainTestSuite) TestNew() {
	assert.Equal(suite.T(), []Block{Genesis()}, suite.blockchain.Chain())
	assert.Equal(suite.T(), 1, suite.blockchain.Len())
}

func (suite *BlockchainTestSuite) TestAddBlock() {
	initialHash := suite.blockchain.Last().Hash
	data := testData(suite.T())
	block := suite.mine(suite.blockchain, data)

	assert.Equal(suite.T(), 2, suite.blockchain.Len())
	assert.Equal(suite.T(), block, suite.blockchain.Last())
	assert.Equal(suite.T(), data, block.Data)
	assert.Equal(suite.T(), initialHash, block.LastHash)
}

func (suite *BlockchainTestSuite) TestAddBlock_Cancelled() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()
	_, err := suite.blockchain.AddBlock(ctx, testData(suite.T()), testMineRate)
	assert.ErrorIs(suite.T(), err, context.Canceled)
	assert.Equal(suite.T(), 1, suite.blockchain.Len())
}

func (suite *BlockchainTestSuite) TestRange() {
	for i := 0; i < 4; i++ {
		suite.mine(suite.blockchain, testData(suite.T()))
	}
	chain := suite.blockchain.Chain()

	page := suite.blockchain.Range(0, 2)
	require.Len(suite.T(), page, 2)
	assert.Equal(suite.T(), chain[4], page[0])
	assert.Equal(suite.T(), chain[3], page[1])

	tail := suite.blockchain.Range(3, 10)
	require.Len(suite.T(), tail, 2)
	assert.Equal(suite.T(), chain[1], tail[0])
	assert.Equal(suite.T(), chain[0], tail[1])

	assert.Empty(suite.T(), suite.blockchain.Range(7, 10))
	assert.Empty(suite.T(), suite.blockchain.Range(2, 1))
}

func (suite *BlockchainTestSuite) TestBalanceAndKnownAddresses() {
	data := suite.validTransactionData()
	suite.mine(suite.newChain, data)

	assert.Equal(suite.T(), wallet.StartingBalance-65+wallet.MiningReward, suite.newChain.Balance(suite.wallet.Address))
	assert.Equal(suite.T(), wallet.StartingBalance+65, suite.newChain.Balance("recipient"))
	assert.ElementsMatch(suite.T(), []string{"recipient", suite.wallet.Address}, suite.newChain.KnownAddresses())
}

func (suite *BlockchainTestSuite) TestReplaceChain_NotLonger() {
	suite.mine(suite.blockchain, testData(suite.T()))
	original := suite.blockchain.Chain()
	err := suite.blockchain.ReplaceChain(suite.newChain.Chain())
	assert.ErrorIs(suite.T(), err, ErrChainTooShort)
	assert.Equal(suite.T(), original, suite.blockchain.Chain())
}

func (suite *BlockchainTestSuite) TestReplaceChain_Valid() {
	suite.mine(suite.newChain, suite.validTransactionData())
	suite.mine(suite.newChain, testData(suite.T()))
	err := suite.blockchain.ReplaceChain(suite.newChain.Chain())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.newChain.Chain(), suite.blockchain.Chain())
}

func (suite *BlockchainTestSuite) TestReplaceChain_InvalidChain() {
	suite.mine(suite.newChain, testData(suite.T()))
	chain := suite.newChain.Chain()
	chain[1].Hash = "evil_hash"
	err := suite.blockchain.ReplaceChain(chain)
	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), 1, suite.blockchain.Len())
}

func (suite *BlockchainTestSuite) TestReplaceChain_InvalidTransactionChain() {
	suite.forge(suite.newChain, []wallet.Transaction{wallet.RewardTransaction(suite.wallet), wallet.RewardTransaction(suite.wallet)})
	err := suite.blockchain.ReplaceChain(suite.newChain.Chain())
	assert.ErrorIs(suite.T(), err, ErrMultipleMiningRewards)
	assert.Equal(suite.T(), 1, suite.blockchain.Len())
}

func (suite *BlockchainTestSuite) TestIsValidChain() {
	suite.mine(suite.newChain, testData(suite.T()))
	suite.mine(suite.newChain, testData(suite.T()))
	assert.NoError(suite.T(), IsValidChain(suite.newChain.Chain()))

	badGenesis := suite.newChain.Chain()
	badGenesis[0].Data = testData(suite.T())
	assert.ErrorIs(suite.T(), IsValidChain(badGenesis), ErrInvalidGenesis)

	badLastHash := suite.newChain.Chain()
	badLastHash[2].LastHash = "broken_last_hash"
	assert.ErrorIs(suite.T(), IsValidChain(badLastHash), ErrInvalidLastHash)

	assert.ErrorIs(suite.T(), IsValidChain(nil), ErrInvalidGenesis)
}

func (suite *BlockchainTestSuite) TestIsValidTransactionChain_Valid() {
	suite.mine(suite.newChain, suite.validTransactionData())
	assert.NoError(suite.T(), IsValidTransactionChain(suite.newChain.Chain()))
}

func (suite *BlockchainTestSuite) TestIsValidTransactionChain_DuplicateTransaction() {
	data := suite.validTransactionData()
	suite.mine(suite.newChain, data)
	suite.forge(suite.newChain, []wallet.Transaction{data[0]})
	assert.ErrorIs(suite.T(), IsValidTransactionChain(suite.newChain.Chain()), ErrDuplicateTransaction)
}

func (suite *BlockchainTestSuite) TestIsValidTransactionChain_MultipleRewards() {
	suite.forge(suite.newChain, []wallet.Transaction{wallet.RewardTransaction(suite.wallet), wallet.RewardTransaction(suite.wallet)})
	assert.ErrorIs(suite.T(), IsValidTransactionChain(suite.newChain.Chain()), ErrMultipleMiningRewards)
}

func (suite *BlockchainTestSuite) TestIsValidTransactionChain_MalformedTransaction() {
	data := suite.validTransactionData()
	data[0] = data[0].Clone()
	data[0].Output[suite.wallet.Address] = 9999
	suite.forge(suite.newChain, data)
	assert.ErrorIs(suite.T(), IsValidTransactionChain(suite.newChain.Chain()), wallet.ErrInvalidOutputTotal)
}

func (suite *BlockchainTestSuite) TestIsValidTransactionChain_MalformedReward() {
	reward := wallet.RewardTransaction(suite.wallet)
	reward.Output[suite.wallet.Address] = 999999
	suite.forge(suite.newChain, []wallet.Transaction{reward})
	assert.ErrorIs(suite.T(), IsValidTransactionChain(suite.newChain.Chain()), wallet.ErrInvalidMiningReward)
}

func (suite *BlockchainTestSuite) TestIsValidTransactionChain_InvalidHistoricBalance() {
	rich, err := wallet.New(fixedLedger(9000))
	suite.Require().NoError(err)
	tx, err := wallet.NewTransaction(rich, "recipient", 100)
	suite.Require().NoError(err)
	suite.Require().NoError(wallet.ValidateTransaction(*tx))
	suite.forge(suite.newChain, []wallet.Transaction{*tx})
	assert.ErrorIs(suite.T(), IsValidTransactionChain(suite.newChain.Chain()), ErrInvalidHistoricBalance)
}

func (suite *BlockchainTestSuite) TestIsValidTransactionChain_OutputOverflow() {
	output := map[string]int64{
		"thief-a":            math.MaxInt64,
		"thief-b":            math.MaxInt64,
		suite.wallet.Address: wallet.StartingBalance + 2,
	}
	signature, err := suite.wallet.Sign(output)
	suite.Require().NoError(err)
	minted := wallet.Transaction{
		ID:     "minted",
		Output: output,
		Input: wallet.Input{
			Timestamp: 1,
			Amount:    wallet.StartingBalance,
			Address:   suite.wallet.Address,
			PublicKey: suite.wallet.PublicKey,
			Signature: signature,
		},
	}

	_, err = suite.newChain.AddBlock(suite.ctx, []wallet.Transaction{minted}, testMineRate)
	assert.ErrorIs(suite.T(), err, wallet.ErrInvalidOutputTotal)

	suite.forge(suite.newChain, []wallet.Transaction{minted})
	assert.ErrorIs(suite.T(), IsValidTransactionChain(suite.newChain.Chain()), wallet.ErrInvalidOutputTotal)
}

func (suite *BlockchainTestSuite) TestAddBlock_StaleInputAmount() {
	stale, err := wallet.NewTransaction(suite.wallet, "recipient", 10)
	suite.Require().NoError(err)
	assert.NoError(suite.T(), suite.newChain.ValidatePending(*stale))

	payer, err := wallet.New(suite.newChain)
	suite.Require().NoError(err)
	payment, err := wallet.NewTransaction(payer, suite.wallet.Address, 40)
	suite.Require().NoError(err)
	suite.mine(suite.newChain, []wallet.Transaction{*payment})

	assert.ErrorIs(suite.T(), suite.newChain.ValidatePending(*stale), ErrInvalidHistoricBalance)
	_, err = suite.newChain.AddBlock(suite.ctx, []wallet.Transaction{*stale}, testMineRate)
	assert.ErrorIs(suite.T(), err, ErrInvalidHistoricBalance)
	assert.Equal(suite.T(), 2, suite.newChain.Len())
	assert.NoError(suite.T(), IsValidTransactionChain(suite.newChain.Chain()))
}

func (suite *BlockchainTestSuite) TestAddBlock_InvalidData() {
	data := suite.validTransactionData()
	suite.mine(suite.newChain, data)

	tests := []struct {
		name string
		data []wallet.Transaction
		err  error
	}{
		{name: "recorded transaction", data: []wallet.Transaction{data[0]}, err: ErrDuplicateTransaction},
		{name: "two rewards", data: []wallet.Transaction{wallet.RewardTransaction(suite.wallet), wallet.RewardTransaction(suite.wallet)}, err: ErrMultipleMiningRewards},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.newChain.AddBlock(suite.ctx, tt.data, testMineRate)
			assert.ErrorIs(suite.T(), err, tt.err)
			assert.Equal(suite.T(), 2, suite.newChain.Len())
		})
	}
	assert.ErrorIs(suite.T(), suite.newChain.ValidatePending(data[0]), ErrDuplicateTransaction)
	assert.ErrorIs(suite.T(), suite.newChain.ValidatePending(wallet.RewardTransaction(suite.wallet)), wallet.ErrInvalidMiningReward)
}

func (suite *BlockchainTestSuite) TestChain_ReturnsCopies() {
	suite.mine(suite.newChain, suite.validTransactionData())
	balance := suite.newChain.Balance("recipient")

	chain := suite.newChain.Chain()
	chain[1].Data[0].Output["recipient"] = 999999
	page := suite.newChain.Range(0, 1)
	page[0].Data[1].Output[suite.wallet.Address] = 999999
	last := suite.newChain.Last()
	last.Data[0].Output["recipient"] = 999999

	assert.Equal(suite.T(), balance, suite.newChain.Balance("recipient"))
	assert.NoError(suite.T(), IsValidTransactionChain(suite.newChain.Chain()))
}

func TestFromBlocks(t *testing.T) {
	source := New()
	_, err := source.AddBlock(context.Background(), testData(t), testMineRate)
	require.NoError(t, err)

	restored, err := FromBlocks(source.Chain())
	require.NoError(t, err)
	assert.Equal(t, source.Chain(), restored.Chain())

	broken := source.Chain()
	broken[1].Nonce++
	_, err = FromBlocks(broken)
	assert.Error(t, err)
}
