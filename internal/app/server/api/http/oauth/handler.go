package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"liquidtrack/internal/app/server/config"
	"liquidtrack/internal/domain/session"
	"liquidtrack/internal/domain/user"
)

const (
	graphMeURL = "https://graph.microsoft.com/v1.0/me"

	notConfigured = "Microsoft Login requires Azure configuration"
)

type Handler struct {
	oauth      *oauth2.Config
	graphURL   string
	users      user.Servicer
	session    session.Servicer
	states     *stateStore
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler создает обработчик. При незаполненной конфигурации Azure обе
// операции отвечают 503.
func NewHandler(cfg config.Azure, users user.Servicer, sessions session.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	h := &Handler{
		graphURL:   graphMeURL,
		users:      users,
		session:    sessions,
		states:     newStateStore(),
		log:        log.With(slog.String("component", "oauth_handler")),
		middleware: mws,
	}
	if cfg.Enabled() {
		tenant := cfg.Tenant
		if tenant == "" {
			tenant = "common"
		}
		h.oauth = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     microsoft.AzureADEndpoint(tenant),
			Scopes:       []string{"openid", "email", "profile", "User.Read"},
		}
	}
	return h
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.callbackOp(), h.callback)
}

func (h *Handler) login(_ context.Context, _ *loginInput) (*redirectOutput, error) {
	if h.oauth == nil {
		return nil, huma.Error503ServiceUnavailable(notConfigured)
	}

	state, err := h.states.issue()
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to start sign-in")
	}

	return &redirectOutput{
		Status:   http.StatusFound,
		Location: h.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account")),
	}, nil
}

func (h *Handler) callback(ctx context.Context, input *callbackInput) (*callbackOutput, error) {
	if h.oauth == nil {
		return nil, huma.Error503ServiceUnavailable(notConfigured)
	}
	if input.Error != "" {
		return nil, huma.Error401Unauthorized("Microsoft sign-in failed: " + input.Error)
	}
	if input.Code == "" || !h.states.consume(input.State) {
		return nil, huma.Error400BadRequest("invalid or expired sign-in state")
	}

	tok, err := h.oauth.Exchange(ctx, input.Code)
	if err != nil {
		h.log.Warn("code exchange failed", "error", err)
		return nil, huma.Error401Unauthorized("Microsoft sign-in failed")
	}

	login, err := h.fetchLogin(ctx, tok)
	if err != nil {
		h.log.Warn("graph profile request failed", "error", err)
		return nil, huma.Error502BadGateway("failed to read Microsoft profile")
	}

	u, err := h.users.LinkExternal(ctx, login)
	if err != nil {
		if errors.Is(err, user.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity("Microsoft account has no usable email")
		}
		h.log.Error("link external user failed", "error", err)
		return nil, huma.Error500InternalServerError("sign-in failed")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session failed", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("sign-in failed")
	}

	h.log.Info("microsoft sign-in", "user_id", u.ID)
	return &callbackOutput{Body: CallbackResponse{Token: token, Login: u.Login, Status: "Ok"}}, nil
}

func (h *Handler) fetchLogin(ctx context.Context, tok *oauth2.Token) (string, error) {
	client := resty.NewWithClient(h.oauth.Client(ctx, tok))

	var me graphUser
	resp, err := client.R().
		SetContext(ctx).
		SetResult(&me).
		Get(h.graphURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("graph status %d", resp.StatusCode())
	}

	login := strings.TrimSpace(me.Mail)
	if login == "" {
		login = strings.TrimSpace(me.UserPrincipalName)
	}
	return login, nil
}
