package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const pingTimeout = 2 * time.Second

// Pinger - проверка доступности базы.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Counter отдает число активных подписчиков realtime.
type Counter interface {
	Count() int
}

type Handler struct {
	db         Pinger
	hub        Counter
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(db Pinger, hub Counter, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		db:         db,
		hub:        hub,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	resp := Response{Status: "OK", Database: "OK"}
	if h.hub != nil {
		resp.Realtime = h.hub.Count()
	}

	if h.db != nil {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := h.db.Ping(pctx); err != nil {
			h.log.Warn("database ping failed", "error", err)
			return nil, huma.Error503ServiceUnavailable("database unavailable", err)
		}
	}

	return &Output{Body: resp}, nil
}
