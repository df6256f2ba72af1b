package store

import (
	"context"

	"liquidtrack/internal/domain/issue"
	"liquidtrack/internal/domain/realtime"
)

// Unconfigured отвечает ErrNotConfigured на любую операцию и не выполняет ввод-вывод.
type Unconfigured struct{}

var _ Store = Unconfigured{}

func (Unconfigured) Query(context.Context, issue.Filter, issue.Order) ([]issue.Issue, error) {
	return nil, &Error{Op: "query", Err: ErrNotConfigured}
}

func (Unconfigured) Insert(context.Context, issue.NewIssue) error {
	return &Error{Op: "insert", Err: ErrNotConfigured}
}

func (Unconfigured) Update(context.Context, string, issue.Patch) error {
	return &Error{Op: "update", Err: ErrNotConfigured}
}

func (Unconfigured) Delete(context.Context, string) error {
	return &Error{Op: "delete", Err: ErrNotConfigured}
}

func (Unconfigured) Subscribe(context.Context, string, func(realtime.Change)) (Subscription, error) {
	return nil, &Error{Op: "subscribe", Err: ErrNotConfigured}
}
