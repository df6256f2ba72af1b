package apikey

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Header - имя заголовка с публичным ключом проекта.
const Header = "apikey"

// APIKey пропускает только запросы с заданным публичным ключом.
// Пустой ключ отключает проверку.
type APIKey struct {
	key string
	log *slog.Logger
}

func New(key string, log *slog.Logger) *APIKey {
	return &APIKey{key: key, log: log.With(slog.String("component", "apikey_middleware"))}
}

func (k *APIKey) Valid(value string) bool {
	if k.key == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(value), []byte(k.key)) == 1
}

func (k *APIKey) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !k.Valid(ctx.Header(Header)) {
			k.log.Debug("invalid api key", "path", ctx.URL().Path)
			ctx.SetHeader("Content-Type", "application/json")
			ctx.SetStatus(http.StatusForbidden)
			_ = json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
				"error": "Invalid API key",
			})
			return
		}
		next(ctx)
	}
}
