package realtime

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/server/api/http/middleware/apikey"
	"liquidtrack/internal/domain/realtime"
)

const (
	Path = "/api/v1/realtime"

	pingInterval = 30 * time.Second
	writeTimeout = 5 * time.Second
)

// Authenticator проверяет bearer-токен запроса.
type Authenticator interface {
	Authenticate(r *http.Request) (int, error)
}

// Hub - источник изменений.
type Hub interface {
	Subscribe() (uuid.UUID, <-chan realtime.Change)
	Unsubscribe(id uuid.UUID)
}

// Handler отдает websocket-поток уведомлений об изменениях таблицы.
type Handler struct {
	hub    Hub
	auth   Authenticator
	key    *apikey.APIKey
	tables map[string]bool
	log    *slog.Logger
}

func NewHandler(hub Hub, auth Authenticator, key *apikey.APIKey, log *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		auth:   auth,
		key:    key,
		tables: map[string]bool{"issues": true},
		log:    log.With(slog.String("component", "realtime_handler")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.key != nil && !h.key.Valid(r.Header.Get(apikey.Header)) {
		http.Error(w, "Invalid API key", http.StatusForbidden)
		return
	}
	userID, err := h.auth.Authenticate(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	table := r.URL.Query().Get("table")
	if table == "" {
		table = "issues"
	}
	if !h.tables[table] {
		http.Error(w, "unknown table", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	id, changes := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	log := h.log.With("subscriber_id", id, "user_id", userID, "table", table)
	log.Info("realtime subscriber connected")

	// клиент ничего не присылает, CloseRead обрабатывает управляющие кадры
	ctx := conn.CloseRead(r.Context())

	if err := h.write(ctx, conn, realtime.Message{Type: realtime.MessageSubscribed, Table: table}); err != nil {
		log.Debug("failed to send ack", "error", err)
		return
	}

	err = h.stream(ctx, conn, table, changes)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		conn.Close(websocket.StatusNormalClosure, "")
	case websocket.CloseStatus(err) != -1:
	default:
		log.Debug("realtime stream ended", "error", err)
	}
	log.Info("realtime subscriber disconnected")
}

func (h *Handler) stream(ctx context.Context, conn *websocket.Conn, table string, changes <-chan realtime.Change) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			if c.Table != table {
				continue
			}
			if err := h.write(ctx, conn, realtime.Message{Type: realtime.MessageChange, Table: table, Change: &c}); err != nil {
				return err
			}
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

func (h *Handler) write(ctx context.Context, conn *websocket.Conn, msg realtime.Message) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(wctx, conn, msg)
}
