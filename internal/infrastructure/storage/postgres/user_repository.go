package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"liquidtrack/internal/domain/user"
)

const uniqueViolation = "23505"

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log.With("component", "user_repository"),
	}
}

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func (r *UserRepository) Create(ctx context.Context, login, passwordHash string) (int, error) {
	var userID int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id`,
		login, passwordHash).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, user.ErrAlreadyExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return userID, nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (user.User, error) {
	return r.findOne(ctx, `SELECT id, login, password_hash, created_at FROM users WHERE login = $1`, login)
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (user.User, error) {
	return r.findOne(ctx, `SELECT id, login, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindOrCreateExternal(ctx context.Context, login string) (user.User, error) {
	// DO UPDATE нужен, чтобы RETURNING вернул существующую строку
	const query = `
		INSERT INTO users (login) VALUES ($1)
		ON CONFLICT (login) DO UPDATE SET login = EXCLUDED.login
		RETURNING id, login, password_hash, created_at`

	u, err := r.findOne(ctx, query, login)
	if err != nil {
		r.log.Error("failed to link external user", "login", login, "error", err)
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Login, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}
