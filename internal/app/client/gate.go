package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/client/store"
)

type GateState int

const (
	StateUnknown GateState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s GateState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Authenticator - провайдер аутентификации.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (store.Session, error)
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context, token string) error
	Validate(ctx context.Context, token string) (store.Session, error)
}

// GateHooks вызываются при входе в состояние authenticated и выходе из него.
type GateHooks struct {
	OnActivate   func(ctx context.Context) error
	OnDeactivate func()
}

// Gate хранит наличие сессии. Пока состояние unknown, данные не запрашиваются.
// Gate также служит store.TokenSource.
type Gate struct {
	auth    Authenticator
	storage Storage
	hooks   GateHooks
	log     *slog.Logger

	// trans упорядочивает переходы, mu защищает поля состояния
	trans     sync.Mutex
	mu        sync.RWMutex
	state     GateState
	session   store.Session
	listeners []func(GateState)
}

var _ store.TokenSource = (*Gate)(nil)

func NewGate(auth Authenticator, storage Storage, hooks GateHooks, log *slog.Logger) *Gate {
	return &Gate{
		auth:    auth,
		storage: storage,
		hooks:   hooks,
		log:     log.With(slog.String("component", "gate")),
	}
}

func (g *Gate) State() GateState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Gate) Login() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.Login
}

// Token возвращает токен только в состоянии authenticated.
func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state != StateAuthenticated {
		return ""
	}
	return g.session.Token
}

// OnChange регистрирует наблюдателя переходов.
func (g *Gate) OnChange(fn func(GateState)) {
	g.mu.Lock()
	g.listeners = append(g.listeners, fn)
	g.mu.Unlock()
}

// Resolve проверяет сохраненный токен. Без токена или с отклоненным токеном
// состояние становится unauthenticated. При сетевой ошибке токен сохраняется
// для следующей попытки.
func (g *Gate) Resolve(ctx context.Context) error {
	g.trans.Lock()
	defer g.trans.Unlock()

	token, err := g.storage.Get(keySessionToken)
	if err != nil {
		g.log.Warn("Не удалось прочитать сохраненную сессию", "error", err)
	}
	if token == "" {
		g.transition(ctx, StateUnauthenticated, store.Session{})
		return nil
	}

	sess, err := g.auth.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrUnauthenticated) {
			g.log.Info("Сохраненная сессия истекла")
			g.forget()
			err = nil
		}
		g.transition(ctx, StateUnauthenticated, store.Session{})
		return err
	}

	g.transition(ctx, StateAuthenticated, sess)
	return nil
}

// SignIn входит по паролю. Состояние при ошибке не меняется.
func (g *Gate) SignIn(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return &store.AuthError{Message: "email and password are required"}
	}

	g.trans.Lock()
	defer g.trans.Unlock()

	sess, err := g.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	g.open(ctx, sess)
	return nil
}

// SignUp регистрирует пользователя и сразу входит.
func (g *Gate) SignUp(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return &store.AuthError{Message: "email and password are required"}
	}
	if err := g.auth.SignUp(ctx, email, password); err != nil {
		return err
	}
	return g.SignIn(ctx, email, password)
}

// CompleteSignIn принимает токен федеративного входа.
func (g *Gate) CompleteSignIn(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return &store.AuthError{Message: "token is required", Err: store.ErrUnauthenticated}
	}

	g.trans.Lock()
	defer g.trans.Unlock()

	sess, err := g.auth.Validate(ctx, token)
	if err != nil {
		return err
	}
	g.open(ctx, sess)
	return nil
}

// SignOut отзывает сессию. Локально сессия завершается даже при ошибке сервера.
func (g *Gate) SignOut(ctx context.Context) error {
	g.trans.Lock()
	defer g.trans.Unlock()

	g.mu.RLock()
	token := g.session.Token
	g.mu.RUnlock()

	var err error
	if token != "" {
		if err = g.auth.SignOut(ctx, token); err != nil {
			g.log.Warn("Ошибка выхода на сервере", "error", err)
		}
	}
	g.forget()
	g.transition(ctx, StateUnauthenticated, store.Session{})
	return err
}

// Expire завершает сессию, отклоненную сервером.
func (g *Gate) Expire() {
	g.trans.Lock()
	defer g.trans.Unlock()

	if g.State() != StateAuthenticated {
		return
	}
	g.log.Info("Сессия отклонена сервером")
	g.forget()
	g.transition(context.Background(), StateUnauthenticated, store.Session{})
}

func (g *Gate) open(ctx context.Context, sess store.Session) {
	if err := g.storage.Set(keySessionToken, sess.Token); err != nil {
		g.log.Warn("Не удалось сохранить сессию", "error", err)
	}
	if err := g.storage.Set(keySessionLogin, sess.Login); err != nil {
		g.log.Warn("Не удалось сохранить логин", "error", err)
	}
	g.transition(ctx, StateAuthenticated, sess)
}

func (g *Gate) forget() {
	for _, k := range []string{keySessionToken, keySessionLogin} {
		if err := g.storage.Delete(k); err != nil {
			g.log.Warn("Не удалось удалить сессию", "key", k, "error", err)
		}
	}
}

// transition вызывается под trans. Хуки и наблюдатели вызываются без mu.
func (g *Gate) transition(ctx context.Context, next GateState, sess store.Session) {
	g.mu.Lock()
	prev := g.state
	g.state = next
	g.session = sess
	listeners := append([]func(GateState){}, g.listeners...)
	g.mu.Unlock()

	if prev == StateAuthenticated && next != StateAuthenticated && g.hooks.OnDeactivate != nil {
		g.hooks.OnDeactivate()
	}
	if prev != StateAuthenticated && next == StateAuthenticated && g.hooks.OnActivate != nil {
		if err := g.hooks.OnActivate(ctx); err != nil {
			g.log.Error("Ошибка активации синхронизации", "error", err)
		}
	}

	if prev != next {
		g.log.Debug("Смена состояния сессии", "from", prev.String(), "to", next.String())
		for _, fn := range listeners {
			fn(next)
		}
	}
}
