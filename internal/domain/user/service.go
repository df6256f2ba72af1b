package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, login, password string) (int, error)
	Authenticate(ctx context.Context, login, password string) (User, error)
	Find(ctx context.Context, id int) (User, error)
	LinkExternal(ctx context.Context, login string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	if validator == nil {
		validator = NewPasswordValidator()
	}
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With(slog.String("component", "user_service")),
	}
}

func (s *Service) Register(ctx context.Context, login, password string) (int, error) {
	login = normalizeLogin(login)
	if err := s.validator.ValidateRegister(login, password); err != nil {
		s.log.Debug("validation failed", "login", login, "error", err)
		return 0, &DomainError{Err: ErrInvalidInput, Message: err.Error(), Code: "invalid_input"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, login, string(hash))
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return 0, ErrAlreadyExists
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", id)
	return id, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (User, error) {
	login = normalizeLogin(login)
	if err := s.validator.ValidateLogin(login); err != nil {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	// учетная запись без пароля входит только через Microsoft
	if u.Password == "" {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Find(ctx context.Context, id int) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("find user %d: %w", id, err)
	}
	return u, nil
}

func (s *Service) LinkExternal(ctx context.Context, login string) (User, error) {
	login = normalizeLogin(login)
	if err := s.validator.ValidateLogin(login); err != nil {
		return User{}, &DomainError{Err: ErrInvalidInput, Message: err.Error(), Code: "invalid_input"}
	}

	u, err := s.repo.FindOrCreateExternal(ctx, login)
	if err != nil {
		return User{}, fmt.Errorf("link external user: %w", err)
	}
	return u, nil
}

func normalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}
