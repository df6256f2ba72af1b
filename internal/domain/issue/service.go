package issue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, filter Filter, order Order) ([]Issue, error)
	Create(ctx context.Context, in NewIssue) (Issue, error)
	Update(ctx context.Context, id string, patch Patch) (Issue, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "issue_service")),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, filter Filter, order Order) ([]Issue, error) {
	if filter.Status != "" {
		if err := filter.Status.Validate(); err != nil {
			return nil, err
		}
	}
	if order.Field == "" {
		order = NewestFirst
	}

	issues, err := s.repo.List(ctx, filter, order)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return issues, nil
}

func (s *Service) Create(ctx context.Context, in NewIssue) (Issue, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return Issue{}, invalid("title is required")
	}
	if in.Description == "" {
		return Issue{}, invalid("description is required")
	}
	if in.Status == "" {
		in.Status = StatusNew
	}
	if err := in.Status.Validate(); err != nil {
		return Issue{}, err
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now().UTC()
	}
	if _, ok := FindPerson(in.ResponsibleID); !ok {
		s.log.Debug("unresolved responsible person", "responsible_id", in.ResponsibleID)
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return Issue{}, fmt.Errorf("create issue: %w", err)
	}
	s.log.Info("issue created", "id", created.ID, "status", created.Status)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (Issue, error) {
	if patch.Empty() {
		return Issue{}, ErrEmptyPatch
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return Issue{}, err
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Issue{}, fmt.Errorf("update issue %s: %w", id, err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete issue %s: %w", id, err)
	}
	s.log.Info("issue deleted", "id", id)
	return nil
}
