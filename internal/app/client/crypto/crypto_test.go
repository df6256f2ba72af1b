package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "device.key")

	key, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Len(t, key, deviceKeyLength)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(deviceKeyPermissions), info.Mode().Perm())

	again, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestLoadOrCreateKey_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.key")
	require.NoError(t, os.WriteFile(path, []byte("zz"), 0600))

	_, err := LoadOrCreateKey(path)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestSealer(t *testing.T) {
	key, err := GenerateRandomBytes(deviceKeyLength)
	require.NoError(t, err)
	s, err := NewSealer(key)
	require.NoError(t, err)

	sealed, err := s.Seal("token-123")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "token-123")

	other, err := s.Seal("token-123")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, other, "nonce must differ")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token-123", plain)
}

func TestSealer_Rejects(t *testing.T) {
	key, _ := GenerateRandomBytes(deviceKeyLength)
	s, err := NewSealer(key)
	require.NoError(t, err)

	otherKey, _ := GenerateRandomBytes(deviceKeyLength)
	foreign, err := NewSealer(otherKey)
	require.NoError(t, err)
	sealed, err := foreign.Seal("x")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"not base64", "%%%"},
		{"too short", "AAAA"},
		{"foreign key", sealed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Open(tt.input)
			assert.ErrorIs(t, err, ErrSealed)
		})
	}

	_, err = NewSealer([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}
