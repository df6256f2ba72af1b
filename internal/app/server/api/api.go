// Store service API.
//
// GET    /api/v1/health          # проверка (публичный)
// POST   /user/register          # регистрация (apikey)
// POST   /user/login             # вход (apikey)
// POST   /user/logout            # выход (auth)
// GET    /user/me                # текущий пользователь (auth)
// GET    /auth/microsoft/login   # вход через Microsoft (публичный)
// GET    /auth/microsoft/callback
// GET    /api/v1/issues          # список (auth)
// POST   /api/v1/issues          # создать (auth)
// PATCH  /api/v1/issues/{id}     # изменить (auth)
// DELETE /api/v1/issues/{id}     # удалить (auth)
// GET    /api/v1/realtime        # websocket уведомлений (auth)
// GET    /metrics                # prometheus
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	healthAPI "liquidtrack/internal/app/server/api/http/health"
	issueAPI "liquidtrack/internal/app/server/api/http/issue"
	"liquidtrack/internal/app/server/api/http/middleware"
	"liquidtrack/internal/app/server/api/http/middleware/apikey"
	"liquidtrack/internal/app/server/api/http/middleware/auth"
	"liquidtrack/internal/app/server/api/http/middleware/logger"
	"liquidtrack/internal/app/server/api/http/middleware/metrics"
	oauthAPI "liquidtrack/internal/app/server/api/http/oauth"
	realtimeAPI "liquidtrack/internal/app/server/api/http/realtime"
	userAPI "liquidtrack/internal/app/server/api/http/user"
	"liquidtrack/internal/app/server/config"
	"liquidtrack/internal/domain/issue"
	"liquidtrack/internal/domain/realtime"
	"liquidtrack/internal/domain/session"
	"liquidtrack/internal/domain/user"
)

// Deps - зависимости API. DB может быть nil: тогда health не проверяет базу.
type Deps struct {
	Config   *config.Config
	DB       healthAPI.Pinger
	Issues   issue.Repository
	Users    user.Repository
	Sessions session.Servicer
	Hub      *realtime.Hub
	Metrics  *metrics.Metrics
	Log      *slog.Logger
}

type Handlers struct {
	Health   *healthAPI.Handler
	User     *userAPI.Handler
	Issue    *issueAPI.Handler
	OAuth    *oauthAPI.Handler
	Realtime *realtimeAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(d Deps) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RealIP, chimw.Recoverer)

	cfg := huma.DefaultConfig("LiquidTrack API", "1.0.0")
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, cfg)

	h := handlers(d)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Issue.SetupRoutes(API)
	h.OAuth.SetupRoutes(API)

	mux.Handle(realtimeAPI.Path, h.Realtime)
	if d.Metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	return mux
}

func handlers(d Deps) *Handlers {
	log := d.Log
	authMW := auth.New(d.Sessions, log)
	keyMW := apikey.New(d.Config.Server.PublicAPIKey, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	// metrics и logger идут первыми, чтобы учитывать и отклоненные запросы
	common := func() *middleware.Container {
		if d.Metrics != nil {
			middlewares.Add(d.Metrics.Middleware())
		}
		return middlewares.Add(loggerMW.Middleware())
	}

	healthHandler := healthAPI.NewHandler(d.DB, d.Hub, log, common().GetAllAndClear())

	userService := user.NewService(d.Users, nil, log)
	public := common().Add(keyMW.Middleware()).GetAllAndClear()
	authed := common().Add(keyMW.Middleware(), authMW.Middleware()).GetAllAndClear()
	userHandler := userAPI.NewHandler(userService, d.Sessions, log, public, authed)

	issueService := issue.NewService(d.Issues, log)
	issueHandler := issueAPI.NewHandler(issueService, log,
		common().Add(keyMW.Middleware(), authMW.Middleware()).GetAllAndClear())

	oauthHandler := oauthAPI.NewHandler(d.Config.Azure, userService, d.Sessions, log, common().GetAllAndClear())

	realtimeHandler := realtimeAPI.NewHandler(d.Hub, authMW, keyMW, log)

	return &Handlers{
		Health:   healthHandler,
		User:     userHandler,
		Issue:    issueHandler,
		OAuth:    oauthHandler,
		Realtime: realtimeHandler,
	}
}
