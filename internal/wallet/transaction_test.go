package wallet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests

func TestNewTransaction(t *testing.T) {
	sender := newTestWallet(t)
	recipient := "some_recipient"
	tx, err := NewTransaction(sender, recipient, 50)
	require.NoError(t, err)

	assert.Len(t, tx.ID, 8)
	assert.Equal(t, int64(50), tx.Output[recipient])
	assert.Equal(t, sender.Balance()-50, tx.Output[sender.Address])
	assert.Equal(t, sender.Address, tx.Input.Address)
	assert.Equal(t, sender.Balance(), tx.Input.Amount)
	assert.Equal(t, sender.PublicKey, tx.Input.PublicKey)
	assert.NotZero(t, tx.Input.Timestamp)
	assert.True(t, Verify(tx.Input.PublicKey, tx.Output, tx.Input.Signature))
}

func TestNewTransaction_Fail(t *testing.T) {
	sender := newTestWallet(t)
	tests := []struct {
		name      string
		recipient string
		amount    int64
		err       error
	}{
		{name: "exceeds balance", recipient: "recipient", amount: StartingBalance + 1, err: ErrAmountExceedsBalance},
		{name: "zero amount", recipient: "recipient", amount: 0, err: ErrInvalidAmount},
		{name: "negative amount", recipient: "recipient", amount: -5, err: ErrInvalidAmount},
		{name: "empty recipient", recipient: "", amount: 5, err: ErrInvalidRecipient},
		{name: "self transfer", recipient: sender.Address, amount: 5, err: ErrInvalidRecipient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransaction(sender, tt.recipient, tt.amount)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTransaction_Update_ExceedsBalance(t *testing.T) {
	sender := newTestWallet(t)
	tx, err := NewTransaction(sender, "recipient", 50)
	require.NoError(t, err)
	err = tx.Update(sender, "new_recipient", StartingBalance+1)
	assert.ErrorIs(t, err, ErrUpdateExceedsBalance)
	assert.EqualError(t, err, "cannot update, amount exceeds balance")
}

func TestTransaction_Update_ForeignTransaction(t *testing.T) {
	tx, err := NewTransaction(newTestWallet(t), "recipient", 50)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.Update(newTestWallet(t), "new_recipient", 1), ErrUpdateExceedsBalance)
}

func TestTransaction_Update_MultipleRecipients(t *testing.T) {
	sender := newTestWallet(t)
	tx, err := NewTransaction(sender, "first_recipient", 50)
	require.NoError(t, err)

	require.NoError(t, tx.Update(sender, "next_recipient", 76))
	assert.Equal(t, int64(50), tx.Output["first_recipient"])
	assert.Equal(t, int64(76), tx.Output["next_recipient"])
	assert.Equal(t, sender.Balance()-50-76, tx.Output[sender.Address])
	assert.True(t, Verify(tx.Input.PublicKey, tx.Output, tx.Input.Signature))

	require.NoError(t, tx.Update(sender, "first_recipient", 25))
	assert.Equal(t, int64(75), tx.Output["first_recipient"])
	assert.Equal(t, sender.Balance()-75-76, tx.Output[sender.Address])
	assert.True(t, Verify(tx.Input.PublicKey, tx.Output, tx.Input.Signature))
	assert.NoError(t, ValidateTransaction(*tx))
}

func TestValidateTransaction(t *testing.T) {
	sender := newTestWallet(t)
	valid, err := NewTransaction(sender, "recipient", 50)
	require.NoError(t, err)
	assert.NoError(t, ValidateTransaction(*valid))

	inflated := valid.Clone()
	inflated.Output[sender.Address] = 9001
	assert.ErrorIs(t, ValidateTransaction(inflated), ErrInvalidOutputTotal)

	forged := valid.Clone()
	forged.Input.Signature, err = newTestWallet(t).Sign(forged.Output)
	require.NoError(t, err)
	assert.ErrorIs(t, ValidateTransaction(forged), ErrInvalidSignature)
}

func TestValidateTransaction_OutputOverflow(t *testing.T) {
	sender := newTestWallet(t)
	// the outputs sum to the sender balance modulo 2^64
	output := map[string]int64{
		"thief-a":      math.MaxInt64,
		"thief-b":      math.MaxInt64,
		sender.Address: StartingBalance + 2,
	}
	signature, err := sender.Sign(output)
	require.NoError(t, err)
	tx := Transaction{
		ID:     newID(),
		Output: output,
		Input: Input{
			Timestamp: 1,
			Amount:    StartingBalance,
			Address:   sender.Address,
			PublicKey: sender.PublicKey,
			Signature: signature,
		},
	}
	assert.ErrorIs(t, ValidateTransaction(tx), ErrInvalidOutputTotal)
}

func TestValidateTransaction_Reward(t *testing.T) {
	miner := newTestWallet(t)
	reward := RewardTransaction(miner)
	assert.True(t, reward.IsReward())
	assert.Equal(t, MiningReward, reward.Output[miner.Address])
	assert.NoError(t, ValidateTransaction(reward))

	inflated := reward.Clone()
	inflated.Output[miner.Address] = MiningReward + 1
	assert.ErrorIs(t, ValidateTransaction(inflated), ErrInvalidMiningReward)

	extra := reward.Clone()
	extra.Output["someone_else"] = MiningReward
	assert.ErrorIs(t, ValidateTransaction(extra), ErrInvalidMiningReward)
}

func TestTransaction_Clone(t *testing.T) {
	tx, err := NewTransaction(newTestWallet(t), "recipient", 10)
	require.NoError(t, err)
	clone := tx.Clone()
	clone.Output["recipient"] = 99
	assert.Equal(t, int64(10), tx.Output["recipient"])
}
