package oauth

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "microsoft-login",
		Method:      http.MethodGet,
		Path:        "/auth/microsoft/login",
		Summary:     "Вход через Microsoft",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) callbackOp() huma.Operation {
	return huma.Operation{
		OperationID: "microsoft-callback",
		Method:      http.MethodGet,
		Path:        "/auth/microsoft/callback",
		Summary:     "Обработка ответа Microsoft",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}
