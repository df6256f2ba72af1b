package issue

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/server/api/http/middleware/auth"
	"liquidtrack/internal/domain/issue"
)

type Handler struct {
	service    issue.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service issue.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With(slog.String("component", "issue_handler")),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	if _, ok := auth.GetUserID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	filter := issue.Filter{Search: input.Query}
	if input.Status != "" {
		s, err := issue.ParseStatus(input.Status)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		filter.Status = s
	}
	if input.Since != "" {
		since, err := time.Parse(time.RFC3339, input.Since)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("since must be an RFC 3339 timestamp")
		}
		filter.Since = &since
	}
	order, err := issue.ParseOrder(input.Order)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	issues, err := h.service.List(ctx, filter, order)
	if err != nil {
		return nil, h.mapError("list", err)
	}
	return &listOutput{Body: issues}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*issueOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	created, err := h.service.Create(ctx, input.Body)
	if err != nil {
		return nil, h.mapError("create", err)
	}
	h.log.Debug("issue created", "issue_id", created.ID, "user_id", userID)
	return &issueOutput{Body: created}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*issueOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	updated, err := h.service.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, h.mapError("update", err)
	}
	h.log.Debug("issue updated", "issue_id", updated.ID, "user_id", userID)
	return &issueOutput{Body: updated}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*struct{}, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, h.mapError("delete", err)
	}
	h.log.Debug("issue deleted", "issue_id", input.ID, "user_id", userID)
	return nil, nil
}

func (h *Handler) mapError(op string, err error) error {
	switch {
	case errors.Is(err, issue.ErrNotFound):
		return huma.Error404NotFound("Issue not found")
	case errors.Is(err, issue.ErrInvalidInput),
		errors.Is(err, issue.ErrInvalidStatus),
		errors.Is(err, issue.ErrEmptyPatch):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	h.log.Error("issue operation failed", "op", op, "error", err)
	return huma.Error500InternalServerError("internal error")
}
