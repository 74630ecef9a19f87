// Package secretary provides methods for ciphering.
package secretary

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"

	"github.com/danilovkiri/dk_go_cryptochain/internal/service/secretary"
)

// scrypt parameters recommended for interactive logins.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

// ErrMessageTooShort is returned when a message cannot hold a nonce.
var ErrMessageTooShort = errors.New("ciphered message is too short")

// Check interface implementation explicitly
var (
	_ secretary.Secretary = (*Secretary)(nil)
)

// Secretary defines object structure and its attributes.
type Secretary struct {
	aesgcm cipher.AEAD
}

// NewSecretaryService initializes a secretary service keyed by a scrypt derivation of passphrase and salt.
func NewSecretaryService(passphrase string, salt []byte) (*Secretary, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, err
	}
	aesblock, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(aesblock)
	if err != nil {
		return nil, err
	}
	return &Secretary{aesgcm: aesgcm}, nil
}

// Encode ciphers data with a random nonce prepended to the result.
func (s *Secretary) Encode(data []byte) ([]byte, error) {
	nonce := make([]byte, s.aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aesgcm.Seal(nonce, nonce, data, nil), nil
}

// Decode deciphers a message produced by Encode.
func (s *Secretary) Decode(msg []byte) ([]byte, error) {
	nonceSize := s.aesgcm.NonceSize()
	if len(msg) < nonceSize {
		return nil, ErrMessageTooShort
	}
	return s.aesgcm.Open(nil, msg[:nonceSize], msg[nonceSize:], nil)
}
