package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/server/api/http/middleware/metrics"
	"liquidtrack/internal/app/server/config"
	"liquidtrack/internal/domain/issue"
	"liquidtrack/internal/domain/realtime"
	"liquidtrack/internal/domain/session"
	"liquidtrack/internal/domain/user"
)

// memoryStore - хранилище в памяти для проверки маршрутов целиком
type memoryStore struct {
	mu       sync.Mutex
	issues   []issue.Issue
	users    []user.User
	sessions map[string]int
	nextID   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: map[string]int{}}
}

func (m *memoryStore) List(_ context.Context, f issue.Filter, o issue.Order) ([]issue.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := f.Apply(m.issues)
	o.Sort(out)
	return out, nil
}

func (m *memoryStore) Create(_ context.Context, n issue.NewIssue) (issue.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	i := issue.Issue{
		ID: strconv.Itoa(m.nextID), Title: n.Title, Description: n.Description, Status: n.Status,
		CreatedAt: n.CreatedAt, UpdatedAt: n.CreatedAt, ResponsibleID: n.ResponsibleID,
	}
	m.issues = append(m.issues, i)
	return i, nil
}

func (m *memoryStore) Update(_ context.Context, id string, p issue.Patch) (issue.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, i := range m.issues {
		if i.ID == id {
			m.issues[k] = p.Apply(i)
			return m.issues[k], nil
		}
	}
	return issue.Issue{}, issue.ErrNotFound
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, i := range m.issues {
		if i.ID == id {
			m.issues = append(m.issues[:k], m.issues[k+1:]...)
			return nil
		}
	}
	return issue.ErrNotFound
}

type memoryUsers struct{ *memoryStore }

func (m memoryUsers) Create(_ context.Context, login, hash string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login {
			return 0, user.ErrAlreadyExists
		}
	}
	u := user.User{ID: len(m.users) + 1, Login: login, Password: hash}
	m.users = append(m.users, u)
	return u.ID, nil
}

func (m memoryUsers) FindByLogin(_ context.Context, login string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m memoryUsers) FindByID(_ context.Context, id int) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m memoryUsers) FindOrCreateExternal(ctx context.Context, login string) (user.User, error) {
	if u, err := m.FindByLogin(ctx, login); err == nil {
		return u, nil
	}
	id, err := m.Create(ctx, login, "")
	if err != nil {
		return user.User{}, err
	}
	return m.FindByID(ctx, id)
}

type memorySessions struct{ *memoryStore }

func (m memorySessions) Create(_ context.Context, userID int, hash string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[hash] = userID
	return nil
}

func (m memorySessions) Validate(_ context.Context, hash string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.sessions[hash]
	if !ok {
		return 0, session.ErrInvalidSession
	}
	return id, nil
}

func (m memorySessions) Revoke(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, hash)
	return nil
}

func (m memorySessions) DeleteExpired(context.Context) (int64, error) { return 0, nil }

type client struct {
	t      *testing.T
	srv    *httptest.Server
	token  string
	apiKey string
}

func (c *client) do(method, path string, body any) (int, map[string]any, []byte) {
	c.t.Helper()
	var rd *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = strings.NewReader(string(b))
	} else {
		rd = strings.NewReader("")
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&raw)
	var obj map[string]any
	_ = json.Unmarshal(raw, &obj)
	return resp.StatusCode, obj, raw
}

func newTestServer(t *testing.T) *client {
	log := slog.Default()
	store := newMemoryStore()
	cfg := &config.Config{Server: config.Server{PublicAPIKey: "anon"}}

	mux := New(Deps{
		Config:   cfg,
		Issues:   store,
		Users:    memoryUsers{store},
		Sessions: session.NewService(memorySessions{store}, log, time.Hour),
		Hub:      realtime.NewHub(log),
		Metrics:  metrics.New(),
		Log:      log,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &client{t: t, srv: srv, apiKey: "anon"}
}

func TestAPI_IssueFlow(t *testing.T) {
	c := newTestServer(t)

	code, _, _ := c.do(http.MethodPost, "/user/register", map[string]string{"login": "ops@example.com", "password": "cargo2024"})
	require.Equal(t, http.StatusCreated, code)

	code, body, _ := c.do(http.MethodPost, "/user/login", map[string]string{"login": "ops@example.com", "password": "cargo2024"})
	require.Equal(t, http.StatusOK, code)
	c.token = body["token"].(string)

	code, body, _ = c.do(http.MethodPost, "/api/v1/issues", map[string]string{
		"title": "Truck delay", "description": "Border queue", "responsible_id": "2",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "New", body["status"])
	id := body["id"].(string)

	code, body, _ = c.do(http.MethodPatch, "/api/v1/issues/"+id, map[string]string{"status": "At Customs"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "At Customs", body["status"])

	code, _, raw := c.do(http.MethodGet, "/api/v1/issues?q=border&status=customs", nil)
	require.Equal(t, http.StatusOK, code)
	var list []issue.Issue
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	code, _, _ = c.do(http.MethodDelete, "/api/v1/issues/"+id, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _, _ = c.do(http.MethodDelete, "/api/v1/issues/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _, _ = c.do(http.MethodPost, "/user/logout", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _, _ = c.do(http.MethodGet, "/api/v1/issues", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPI_Gates(t *testing.T) {
	c := newTestServer(t)

	code, _, _ := c.do(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _, _ = c.do(http.MethodGet, "/api/v1/issues", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	c.apiKey = ""
	code, _, _ = c.do(http.MethodPost, "/user/login", map[string]string{"login": "ops@example.com", "password": "cargo2024"})
	assert.Equal(t, http.StatusForbidden, code, "wrong public key is not a session failure")

	code, _, _ = c.do(http.MethodGet, "/auth/microsoft/login", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)

	resp, err := c.srv.Client().Get(c.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
