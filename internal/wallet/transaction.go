package wallet

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidRecipient     = errors.New("invalid recipient")
	ErrAmountExceedsBalance = errors.New("amount exceeds balance")
	ErrUpdateExceedsBalance = errors.New("cannot update, amount exceeds balance")
	ErrInvalidOutputTotal   = errors.New("invalid transaction output values")
	ErrInvalidSignature     = errors.New("invalid transaction signature")
	ErrInvalidMiningReward  = errors.New("invalid mining reward")
)

// Input is the signed part of a transaction describing the sender.
type Input struct {
	Timestamp int64  `json:"timestamp,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// Transaction documents an exchange of currency from a sender to one or more recipients.
//
// Output holds the amount each recipient receives and the balance left to the sender.
type Transaction struct {
	ID     string           `json:"id"`
	Output map[string]int64 `json:"output"`
	Input  Input            `json:"input"`
}

// NewTransaction creates a signed transaction sending amount from sender to recipient.
func NewTransaction(sender *Wallet, recipient string, amount int64) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if recipient == "" || recipient == sender.Address {
		return nil, ErrInvalidRecipient
	}
	balance := sender.Balance()
	if amount > balance {
		return nil, ErrAmountExceedsBalance
	}
	t := &Transaction{
		ID: newID(),
		Output: map[string]int64{
			recipient:      amount,
			sender.Address: balance - amount,
		},
	}
	input, err := createInput(sender, t.Output)
	if err != nil {
		return nil, err
	}
	t.Input = input
	return t, nil
}

// RewardTransaction creates a transaction granting the mining reward to miner.
func RewardTransaction(miner *Wallet) Transaction {
	return Transaction{
		ID:     newID(),
		Output: map[string]int64{miner.Address: MiningReward},
		Input:  Input{Address: MiningRewardAddress},
	}
}

// Update adds amount for recipient to the transaction and signs it again.
func (t *Transaction) Update(sender *Wallet, recipient string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if recipient == "" || recipient == sender.Address {
		return ErrInvalidRecipient
	}
	remaining, ok := t.Output[sender.Address]
	if !ok || amount > remaining {
		return ErrUpdateExceedsBalance
	}
	t.Output[recipient] += amount
	t.Output[sender.Address] = remaining - amount
	input, err := createInput(sender, t.Output)
	if err != nil {
		return err
	}
	t.Input = input
	return nil
}

// IsReward reports whether the transaction is a mining reward.
func (t Transaction) IsReward() bool {
	return t.Input.Address == MiningRewardAddress
}

// Clone returns a deep copy of the transaction.
func (t Transaction) Clone() Transaction {
	output := make(map[string]int64, len(t.Output))
	for address, amount := range t.Output {
		output[address] = amount
	}
	t.Output = output
	return t
}

// ValidateTransaction returns an error if the transaction is invalid.
func ValidateTransaction(t Transaction) error {
	if t.IsReward() {
		if len(t.Output) != 1 {
			return fmt.Errorf("%s: %w", t.ID, ErrInvalidMiningReward)
		}
		for _, amount := range t.Output {
			if amount != MiningReward {
				return fmt.Errorf("%s: %w", t.ID, ErrInvalidMiningReward)
			}
		}
		return nil
	}
	var total int64
	for _, amount := range t.Output {
		if amount < 0 || amount > math.MaxInt64-total {
			return fmt.Errorf("%s: %w", t.ID, ErrInvalidOutputTotal)
		}
		total += amount
	}
	if t.Input.Amount != total {
		return fmt.Errorf("%s: %w", t.ID, ErrInvalidOutputTotal)
	}
	if !Verify(t.Input.PublicKey, t.Output, t.Input.Signature) {
		return fmt.Errorf("%s: %w", t.ID, ErrInvalidSignature)
	}
	return nil
}

func createInput(sender *Wallet, output map[string]int64) (Input, error) {
	signature, err := sender.Sign(output)
	if err != nil {
		return Input{}, err
	}
	return Input{
		Timestamp: time.Now().UnixNano(),
		Amount:    sender.Balance(),
		Address:   sender.Address,
		PublicKey: sender.PublicKey,
		Signature: signature,
	}, nil
}

func newID() string {
	return uuid.NewString()[:8]
}
