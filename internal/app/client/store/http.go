package store

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/client/config"
	"liquidtrack/internal/domain/issue"
)

const (
	issuesPath = "/api/v1/issues"
	userAgent  = "LiquidTrack-Client/1.0"
)

// HTTPStore работает со службой хранения по HTTP и websocket.
type HTTPStore struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	tokens  TokenSource
	log     *slog.Logger

	// границы паузы между попытками переподключения к потоку изменений
	redialMin time.Duration
	redialMax time.Duration
}

var _ Store = (*HTTPStore)(nil)

func newRestClient(cfg config.StoreConfig) *resty.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(timeout).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
}

// NewHTTP создает адаптер. Повторов запросов нет: ошибка сразу возвращается вызывающему.
func NewHTTP(cfg config.StoreConfig, tokens TokenSource, log *slog.Logger) *HTTPStore {
	return &HTTPStore{
		client:  newRestClient(cfg),
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		tokens:  tokens,
		log:     log.With(slog.String("component", "store")),

		redialMin: defaultRedialMin,
		redialMax: defaultRedialMax,
	}
}

func (s *HTTPStore) Query(ctx context.Context, f issue.Filter, o issue.Order) ([]issue.Issue, error) {
	req, err := s.request(ctx, "query")
	if err != nil {
		return nil, err
	}

	if o.Field == "" {
		o = issue.NewestFirst
	}
	req.SetQueryParam("order", o.String())
	if f.Search != "" {
		req.SetQueryParam("q", f.Search)
	}
	if f.Status != "" {
		req.SetQueryParam("status", string(f.Status))
	}
	if f.Since != nil {
		req.SetQueryParam("since", f.Since.UTC().Format(time.RFC3339))
	}

	var issues []issue.Issue
	resp, err := req.SetResult(&issues).Get(issuesPath)
	if err := s.check("query", resp, err); err != nil {
		return nil, err
	}
	if issues == nil {
		issues = []issue.Issue{}
	}
	return issues, nil
}

func (s *HTTPStore) Insert(ctx context.Context, n issue.NewIssue) error {
	req, err := s.request(ctx, "insert")
	if err != nil {
		return err
	}
	resp, err := req.SetBody(n).Post(issuesPath)
	return s.check("insert", resp, err)
}

func (s *HTTPStore) Update(ctx context.Context, id string, p issue.Patch) error {
	req, err := s.request(ctx, "update")
	if err != nil {
		return err
	}
	resp, err := req.SetBody(p).SetPathParam("id", id).Patch(issuesPath + "/{id}")
	return s.check("update", resp, err)
}

func (s *HTTPStore) Delete(ctx context.Context, id string) error {
	req, err := s.request(ctx, "delete")
	if err != nil {
		return err
	}
	resp, err := req.SetPathParam("id", id).Delete(issuesPath + "/{id}")
	return s.check("delete", resp, err)
}

func (s *HTTPStore) request(ctx context.Context, op string) (*resty.Request, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, &Error{Op: op, Err: ErrUnauthenticated}
	}
	return s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(&apiError{}), nil
}

func (s *HTTPStore) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		s.log.Debug("Запрос к хранилищу не выполнен", "op", op, "error", err)
		return &Error{Op: op, Err: err}
	}
	if !resp.IsError() {
		return nil
	}

	e := &Error{Op: op, Status: resp.StatusCode()}
	if apiErr, ok := resp.Error().(*apiError); ok {
		e.Message = apiErr.message()
	}
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		e.Err = ErrUnauthenticated
	case http.StatusForbidden:
		e.Err = ErrForbidden
	case http.StatusNotFound:
		e.Err = ErrNotFound
	default:
		e.Err = errors.New(http.StatusText(resp.StatusCode()))
	}
	s.log.Debug("Хранилище вернуло ошибку", "op", op, "status", e.Status, "message", e.Message)
	return e
}
