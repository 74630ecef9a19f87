// Package keystore provides persistence for the private key of the node wallet.
package keystore

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"go.uber.org/zap"

	secretary "github.com/danilovkiri/dk_go_cryptochain/internal/service/secretary/v1"
)

const (
	pemTypePlain     = "SECP256K1 PRIVATE KEY"
	pemTypeEncrypted = "ENCRYPTED SECP256K1 PRIVATE KEY"
	saltHeader       = "Salt"
	saltSize         = 16
)

var (
	ErrPassphraseRequired = errors.New("key file is encrypted but no passphrase was given")
	ErrUnknownKeyFormat   = errors.New("key file does not hold a secp256k1 private key")
)

// RetrieveOrCreate returns the private key stored at path, generating and storing a new one
// if the file does not exist. A non-empty passphrase encrypts newly stored keys.
func RetrieveOrCreate(path, passphrase string) (*secp256k1.PrivateKey, error) {
	key, err := Retrieve(path, passphrase)
	if err == nil {
		zap.L().Info("private key retrieved", zap.String("path", path))
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	key, err = secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	if err := Store(path, key, passphrase); err != nil {
		return nil, err
	}
	zap.L().Info("private key generated", zap.String("path", path), zap.Bool("encrypted", passphrase != ""))
	return key, nil
}

// Retrieve reads a private key from a PEM file.
func Retrieve(path, passphrase string) (*secp256k1.PrivateKey, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(content)
	if block == nil {
		return nil, ErrUnknownKeyFormat
	}
	keyBytes := block.Bytes
	switch block.Type {
	case pemTypePlain:
	case pemTypeEncrypted:
		if passphrase == "" {
			return nil, ErrPassphraseRequired
		}
		salt, err := hex.DecodeString(block.Headers[saltHeader])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid salt: %w", path, err)
		}
		sec, err := secretary.NewSecretaryService(passphrase, salt)
		if err != nil {
			return nil, err
		}
		keyBytes, err = sec.Decode(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%s: could not decrypt key: %w", path, err)
		}
	default:
		return nil, ErrUnknownKeyFormat
	}
	if len(keyBytes) != secp256k1.PrivKeyBytesLen {
		return nil, ErrUnknownKeyFormat
	}
	return secp256k1.PrivKeyFromBytes(keyBytes), nil
}

// Store writes a private key to a PEM file readable by the owner only.
func Store(path string, key *secp256k1.PrivateKey, passphrase string) error {
	block := &pem.Block{
		Type:  pemTypePlain,
		Bytes: key.Serialize(),
	}
	if passphrase != "" {
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return err
		}
		sec, err := secretary.NewSecretaryService(passphrase, salt)
		if err != nil {
			return err
		}
		sealed, err := sec.Encode(block.Bytes)
		if err != nil {
			return err
		}
		block = &pem.Block{
			Type:    pemTypeEncrypted,
			Headers: map[string]string{saltHeader: hex.EncodeToString(salt)},
			Bytes:   sealed,
		}
	}
	return os.WriteFile(path, pem.EncodeToMemory(block), 0600)
}
