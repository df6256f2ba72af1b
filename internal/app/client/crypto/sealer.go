package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const sealInfo = "liquidtrack session v1"

var ErrSealed = errors.New("sealed value is corrupted")

// Sealer шифрует значения AES-GCM ключом, выведенным из ключа устройства.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(deviceKey []byte) (*Sealer, error) {
	if len(deviceKey) != deviceKeyLength {
		return nil, ErrInvalidKey
	}

	key := make([]byte, deviceKeyLength)
	defer clearMemory(key)
	if _, err := io.ReadFull(hkdf.New(sha256.New, deviceKey, nil, []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal возвращает nonce||ciphertext в base64.
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce, err := GenerateRandomBytes(s.aead.NonceSize())
	if err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrSealed
	}
	n := s.aead.NonceSize()
	if len(raw) < n {
		return "", ErrSealed
	}
	plain, err := s.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", ErrSealed
	}
	return string(plain), nil
}
