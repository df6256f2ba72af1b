package client

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/client/advice"
	"liquidtrack/internal/app/client/config"
	"liquidtrack/internal/app/client/crypto"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/store"
)

// Screen - экран, который должен показать слой представления.
type Screen int

const (
	ScreenConfigMissing Screen = iota
	ScreenLoading
	ScreenAuth
	ScreenTracker
)

func (s Screen) String() string {
	switch s {
	case ScreenConfigMissing:
		return "config-missing"
	case ScreenLoading:
		return "loading"
	case ScreenAuth:
		return "auth"
	default:
		return "tracker"
	}
}

type App struct {
	config  *config.Config
	log     *slog.Logger
	storage Storage
	store   store.Store
	auth    *store.AuthClient
	gate    *Gate
	sync    *SyncService

	mu   sync.RWMutex
	lang i18n.Lang
}

// New собирает клиента. Без адреса или ключа хранилища используется
// store.Unconfigured, и ни одного запроса к хранилищу не выполняется.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.EnsureDir(); err != nil {
		log.Warn("Не удалось создать каталог конфигурации", "dir", cfg.ConfigDir, "error", err)
	}

	var storage Storage
	sqliteStorage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		storage = NewMemoryStorage()
	} else {
		storage = sealStorage(sqliteStorage, cfg.KeyPath, log)
	}

	app := &App{
		config:  cfg,
		log:     log,
		storage: storage,
		lang:    resolveLang(storage, cfg.Language),
	}

	if cfg.Store.Configured() {
		app.auth = store.NewAuthClient(cfg.Store, log)
		app.gate = NewGate(app.auth, storage, GateHooks{
			OnActivate:   app.activate,
			OnDeactivate: app.deactivate,
		}, log)
		app.store = store.NewHTTP(cfg.Store, app.gate, log)
	} else {
		log.Warn("Хранилище не настроено, показываем экран настройки")
		app.store = store.Unconfigured{}
	}

	app.sync = NewSyncService(app.store, advice.New(cfg.LLM, log), log, cfg.RealtimeDebounce)
	app.sync.SetLang(app.lang)
	if app.gate != nil {
		app.sync.OnLoadError(app.expireOn)
	}

	return app, nil
}

// sealStorage без ключа устройства оставляет хранилище как есть.
func sealStorage(inner Storage, keyPath string, log *slog.Logger) Storage {
	key, err := crypto.LoadOrCreateKey(keyPath)
	if err != nil {
		log.Warn("Ключ устройства недоступен, токен хранится открыто", "error", err)
		return inner
	}
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		log.Warn("Не удалось создать шифратор", "error", err)
		return inner
	}
	return NewSealedStorage(inner, sealer, log)
}

func resolveLang(storage Storage, def string) i18n.Lang {
	if saved, err := storage.Get(keyLanguage); err == nil && saved != "" {
		if l, err := i18n.ParseLang(saved); err == nil {
			return l
		}
	}
	if l, err := i18n.ParseLang(def); err == nil {
		return l
	}
	return i18n.Default
}

func (a *App) activate(ctx context.Context) error {
	return a.sync.Activate(ctx)
}

func (a *App) deactivate() {
	a.sync.Deactivate()
}

// Configured сообщает, заданы ли параметры хранилища.
func (a *App) Configured() bool {
	return a.gate != nil
}

// Start определяет состояние сессии. Для ненастроенного клиента возвращает ErrConfiguration.
func (a *App) Start(ctx context.Context) error {
	if !a.Configured() {
		return ErrConfiguration
	}
	return a.gate.Resolve(ctx)
}

// Screen вычисляется из состояния сессии.
func (a *App) Screen() Screen {
	if !a.Configured() {
		return ScreenConfigMissing
	}
	switch a.gate.State() {
	case StateUnknown:
		return ScreenLoading
	case StateUnauthenticated:
		return ScreenAuth
	default:
		return ScreenTracker
	}
}

func (a *App) Sync() *SyncService {
	return a.sync
}

func (a *App) Config() *config.Config {
	return a.config
}

// Login - пользователь текущей сессии.
func (a *App) Login() string {
	if !a.Configured() {
		return ""
	}
	return a.gate.Login()
}

// OnSessionChange регистрирует наблюдателя сессии.
func (a *App) OnSessionChange(fn func(GateState)) {
	if a.Configured() {
		a.gate.OnChange(fn)
	}
}

func (a *App) Lang() i18n.Lang {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lang
}

// SetLang меняет язык и сохраняет выбор.
func (a *App) SetLang(l i18n.Lang) error {
	a.mu.Lock()
	a.lang = l
	a.mu.Unlock()
	a.sync.SetLang(l)
	return a.storage.Set(keyLanguage, string(l))
}

// Reload перечитывает снимок. Отклоненный сервером токен завершает сессию.
func (a *App) Reload(ctx context.Context) error {
	if !a.Configured() {
		return ErrConfiguration
	}
	if a.gate.State() != StateAuthenticated {
		return ErrNotAuthenticated
	}
	err := a.sync.Load(ctx)
	a.expireOn(err)
	return err
}

func (a *App) expireOn(err error) {
	if errors.Is(err, store.ErrUnauthenticated) {
		a.gate.Expire()
	}
}

func (a *App) SignIn(ctx context.Context, email, password string) error {
	if !a.Configured() {
		return ErrConfiguration
	}
	return a.gate.SignIn(ctx, email, password)
}

func (a *App) SignUp(ctx context.Context, email, password string) error {
	if !a.Configured() {
		return ErrConfiguration
	}
	return a.gate.SignUp(ctx, email, password)
}

// CompleteSignIn завершает вход через Microsoft токеном из браузера.
func (a *App) CompleteSignIn(ctx context.Context, token string) error {
	if !a.Configured() {
		return ErrConfiguration
	}
	return a.gate.CompleteSignIn(ctx, token)
}

func (a *App) SignOut(ctx context.Context) error {
	if !a.Configured() {
		return ErrConfiguration
	}
	return a.gate.SignOut(ctx)
}

// MicrosoftURL - адрес федеративного входа.
func (a *App) MicrosoftURL() (string, error) {
	if !a.Configured() {
		return "", ErrConfiguration
	}
	return a.auth.OAuthURL()
}

// Shutdown снимает подписку и закрывает локальное хранилище.
func (a *App) Shutdown() {
	a.log.Info("Завершение работы клиента...")
	a.sync.Deactivate()
	if err := a.storage.Close(); err != nil {
		a.log.Warn("Ошибка закрытия локального хранилища", "error", err)
	}
	a.log.Info("Клиент завершил работу")
}
