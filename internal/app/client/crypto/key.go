package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	deviceKeyLength      = 32
	deviceKeyPermissions = 0600
)

var ErrInvalidKey = errors.New("invalid device key")

// LoadOrCreateKey читает ключ устройства из файла или создает новый.
func LoadOrCreateKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil || len(key) != deviceKeyLength {
			return nil, fmt.Errorf("%w: %s", ErrInvalidKey, path)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read device key: %w", err)
	}

	key, err := GenerateRandomBytes(deviceKeyLength)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), deviceKeyPermissions); err != nil {
		return nil, fmt.Errorf("write device key: %w", err)
	}
	return key, nil
}

// GenerateRandomBytes генерирует криптографически безопасные случайные байты
func GenerateRandomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

func clearMemory(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
