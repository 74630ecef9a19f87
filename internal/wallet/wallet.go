// Package wallet provides wallets, transactions and the transaction pool of a node.
package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/danilovkiri/dk_go_cryptochain/internal/cryptohash"
)

const (
	// StartingBalance is the balance of every address that never conducted a transaction.
	StartingBalance int64 = 1000
	// MiningReward is the amount a miner receives for every mined block.
	MiningReward int64 = 50
	// MiningRewardAddress is the input address marking a mining reward transaction.
	MiningRewardAddress = "*--official-mining-reward--*"
)

// Ledger defines a set of methods for types able to report address balances.
type Ledger interface {
	Balance(address string) int64
}

// Wallet keeps the key pair of a node and authorises its transactions via signatures.
type Wallet struct {
	privateKey *secp256k1.PrivateKey
	PublicKey  string
	Address    string
	ledger     Ledger
}

// New generates a new key pair and returns a Wallet bound to the given ledger.
func New(ledger Ledger) (*Wallet, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return FromPrivateKey(key, ledger), nil
}

// FromPrivateKey returns a Wallet for an existing private key.
func FromPrivateKey(key *secp256k1.PrivateKey, ledger Ledger) *Wallet {
	publicKey := hex.EncodeToString(key.PubKey().SerializeCompressed())
	return &Wallet{
		privateKey: key,
		PublicKey:  publicKey,
		Address:    cryptohash.CryptoHash(publicKey),
		ledger:     ledger,
	}
}

// PrivateKey returns the wallet private key.
func (w *Wallet) PrivateKey() *secp256k1.PrivateKey {
	return w.privateKey
}

// Balance returns the current balance of the wallet address as seen by its ledger.
func (w *Wallet) Balance() int64 {
	if w.ledger == nil {
		return StartingBalance
	}
	return w.ledger.Balance(w.Address)
}

// Sign returns a hex encoded DER signature of the JSON representation of data.
func (w *Wallet) Sign(data interface{}) (string, error) {
	digest, err := digest(data)
	if err != nil {
		return "", err
	}
	signature := ecdsa.Sign(w.privateKey, digest)
	return hex.EncodeToString(signature.Serialize()), nil
}

// Verify checks a signature of data against a hex encoded compressed public key.
func Verify(publicKey string, data interface{}, signature string) bool {
	keyBytes, err := hex.DecodeString(publicKey)
	if err != nil {
		return false
	}
	key, err := secp256k1.ParsePubKey(keyBytes)
	if err != nil {
		return false
	}
	sigBytes, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false
	}
	digest, err := digest(data)
	if err != nil {
		return false
	}
	return sig.Verify(digest, key)
}

// CalculateBalance calculates the balance of an address from the transactions of consecutive blocks.
//
// Every transaction conducted by the address resets its balance to the amount the
// transaction left to the sender; every other transaction paying the address adds to it.
func CalculateBalance(blockData [][]Transaction, address string) int64 {
	balance := StartingBalance
	for _, transactions := range blockData {
		for _, transaction := range transactions {
			if transaction.Input.Address == address {
				balance = transaction.Output[address]
			} else if amount, ok := transaction.Output[address]; ok {
				balance = addSaturated(balance, amount)
			}
		}
	}
	return balance
}

// addSaturated adds amount to balance clamping the result to the int64 range.
func addSaturated(balance, amount int64) int64 {
	switch {
	case amount > 0 && balance > math.MaxInt64-amount:
		return math.MaxInt64
	case amount < 0 && balance < math.MinInt64-amount:
		return math.MinInt64
	}
	return balance + amount
}

func digest(data interface{}) ([]byte, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(encoded)
	return sum[:], nil
}
