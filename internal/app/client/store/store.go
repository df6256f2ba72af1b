// Package store - адаптер удаленного хранилища проблем: запросы, изменения и
// подписка на уведомления об изменениях.
package store

import (
	"context"

	"liquidtrack/internal/domain/issue"
	"liquidtrack/internal/domain/realtime"
)

// IssuesTable - таблица, на изменения которой подписывается клиент.
const IssuesTable = "issues"

// Store - операции над коллекцией проблем. Все ошибки имеют тип *Error.
type Store interface {
	Query(ctx context.Context, f issue.Filter, o issue.Order) ([]issue.Issue, error)
	Insert(ctx context.Context, n issue.NewIssue) error
	Update(ctx context.Context, id string, p issue.Patch) error
	Delete(ctx context.Context, id string) error
	// Subscribe вызывает onChange на каждое изменение таблицы. Содержимое
	// уведомления носит справочный характер.
	Subscribe(ctx context.Context, table string, onChange func(realtime.Change)) (Subscription, error)
}

// Subscription освобождается вызовом Unsubscribe, повторный вызов безопасен.
type Subscription interface {
	Unsubscribe()
}

// TokenSource отдает текущий токен сессии или пустую строку.
type TokenSource interface {
	Token() string
}

// StaticToken - TokenSource с фиксированным значением.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }
