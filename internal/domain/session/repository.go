package session

import (
	"context"
	"time"
)

// Repository хранит хеши токенов сессий. Сам токен в хранилище не попадает.
type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	// Validate возвращает ErrInvalidSession, если сессия не найдена или истекла.
	Validate(ctx context.Context, tokenHash string) (int, error)
	Revoke(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
