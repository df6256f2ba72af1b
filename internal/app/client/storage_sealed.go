package client

import (
	"errors"

	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/client/crypto"
)

// SealedStorage шифрует токен сессии перед записью в хранилище.
type SealedStorage struct {
	Storage
	sealer *crypto.Sealer
	log    *slog.Logger
}

func NewSealedStorage(inner Storage, sealer *crypto.Sealer, log *slog.Logger) *SealedStorage {
	return &SealedStorage{Storage: inner, sealer: sealer, log: log}
}

func sealedKey(key string) bool {
	return key == keySessionToken
}

func (s *SealedStorage) Get(key string) (string, error) {
	value, err := s.Storage.Get(key)
	if err != nil || value == "" || !sealedKey(key) {
		return value, err
	}

	plain, err := s.sealer.Open(value)
	if errors.Is(err, crypto.ErrSealed) {
		// Ключ устройства сменился: сессию придется открыть заново.
		s.log.Warn("Сохраненная сессия не расшифровывается, требуется вход", "key", key)
		return "", nil
	}
	return plain, err
}

func (s *SealedStorage) Set(key, value string) error {
	if !sealedKey(key) || value == "" {
		return s.Storage.Set(key, value)
	}
	sealed, err := s.sealer.Seal(value)
	if err != nil {
		return err
	}
	return s.Storage.Set(key, sealed)
}
