package issue

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "issues-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/issues",
		Summary:     "Список проблем",
		Tags:        []string{"issues"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "issues-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/issues",
		Summary:       "Создать проблему",
		Tags:          []string{"issues"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "issues-update",
		Method:      http.MethodPatch,
		Path:        "/api/v1/issues/{id}",
		Summary:     "Изменить статус, ответственного или совет AI",
		Tags:        []string{"issues"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "issues-delete",
		Method:        http.MethodDelete,
		Path:          "/api/v1/issues/{id}",
		Summary:       "Удалить проблему",
		Tags:          []string{"issues"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}
