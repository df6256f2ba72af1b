package issue

import (
	"context"
)

type Repository interface {
	List(ctx context.Context, filter Filter, order Order) ([]Issue, error)
	Create(ctx context.Context, in NewIssue) (Issue, error)
	Update(ctx context.Context, id string, patch Patch) (Issue, error)
	Delete(ctx context.Context, id string) error
}
