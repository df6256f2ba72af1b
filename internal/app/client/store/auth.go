package store

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/client/config"
)

const (
	signInPath    = "/user/login"
	signUpPath    = "/user/register"
	signOutPath   = "/user/logout"
	mePath        = "/user/me"
	microsoftPath = "/auth/microsoft/login"
)

// Session - выданная сервером сессия.
type Session struct {
	Token string `json:"token"`
	Login string `json:"login"`
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthClient обращается к провайдеру аутентификации службы хранения.
type AuthClient struct {
	client  *resty.Client
	baseURL string
	enabled bool
	log     *slog.Logger
}

func NewAuthClient(cfg config.StoreConfig, log *slog.Logger) *AuthClient {
	return &AuthClient{
		client:  newRestClient(cfg),
		baseURL: strings.TrimRight(cfg.URL, "/"),
		enabled: cfg.Configured(),
		log:     log.With(slog.String("component", "auth")),
	}
}

// SignIn входит по email и паролю.
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (Session, error) {
	if !a.enabled {
		return Session{}, ErrNotConfigured
	}
	var s Session
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(credentials{Login: email, Password: password}).
		SetResult(&s).
		SetError(&apiError{}).
		Post(signInPath)
	if err := a.check(resp, err); err != nil {
		return Session{}, err
	}
	if s.Login == "" {
		s.Login = email
	}
	return s, nil
}

// SignUp регистрирует пользователя. Сессию регистрация не открывает.
func (a *AuthClient) SignUp(ctx context.Context, email, password string) error {
	if !a.enabled {
		return ErrNotConfigured
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(credentials{Login: email, Password: password}).
		SetError(&apiError{}).
		Post(signUpPath)
	return a.check(resp, err)
}

// SignOut отзывает токен на сервере.
func (a *AuthClient) SignOut(ctx context.Context, token string) error {
	if !a.enabled {
		return ErrNotConfigured
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(&apiError{}).
		Post(signOutPath)
	return a.check(resp, err)
}

// Validate проверяет токен и возвращает логин владельца.
func (a *AuthClient) Validate(ctx context.Context, token string) (Session, error) {
	if !a.enabled {
		return Session{}, ErrNotConfigured
	}
	if token == "" {
		return Session{}, ErrUnauthenticated
	}
	var me struct {
		Login string `json:"login"`
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&me).
		SetError(&apiError{}).
		Get(mePath)
	if err := a.check(resp, err); err != nil {
		return Session{}, err
	}
	return Session{Token: token, Login: me.Login}, nil
}

// OAuthURL - адрес входа через Microsoft, открывается в браузере.
func (a *AuthClient) OAuthURL() (string, error) {
	if !a.enabled {
		return "", ErrNotConfigured
	}
	return a.baseURL + microsoftPath, nil
}

func (a *AuthClient) check(resp *resty.Response, err error) error {
	if err != nil {
		a.log.Debug("Запрос аутентификации не выполнен", "error", err)
		return &AuthError{Err: err, Message: err.Error()}
	}
	if !resp.IsError() {
		return nil
	}
	e := &AuthError{Status: resp.StatusCode()}
	if apiErr, ok := resp.Error().(*apiError); ok {
		e.Message = apiErr.message()
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		e.Err = ErrUnauthenticated
	} else {
		e.Err = errors.New(http.StatusText(resp.StatusCode()))
	}
	return e
}
