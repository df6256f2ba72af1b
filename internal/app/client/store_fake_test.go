package client

import (
	"context"
	"strconv"
	"sync"

	"liquidtrack/internal/app/client/store"
	"liquidtrack/internal/domain/issue"
	"liquidtrack/internal/domain/realtime"
)

type fakeUpdate struct {
	ID    string
	Patch issue.Patch
}

// fakeStore - хранилище в памяти с хуками для управления порядком вызовов.
type fakeStore struct {
	mu   sync.Mutex
	rows []issue.Issue
	next int

	queryErr     error
	insertErr    error
	updateErr    error
	deleteErr    error
	subscribeErr error

	queryHook  func(call int)
	updateHook func(id string)

	queries    int
	inserted   []issue.NewIssue
	updates    []fakeUpdate
	deleted    []string
	subscribes int
	unsubs     int
	onChange   func(realtime.Change)
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore(rows ...issue.Issue) *fakeStore {
	return &fakeStore{rows: rows, next: len(rows) + 1}
}

func (f *fakeStore) Query(_ context.Context, _ issue.Filter, _ issue.Order) ([]issue.Issue, error) {
	f.mu.Lock()
	f.queries++
	call := f.queries
	err := f.queryErr
	out := make([]issue.Issue, len(f.rows))
	copy(out, f.rows)
	hook := f.queryHook
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if err != nil {
		return nil, &store.Error{Op: "query", Err: err}
	}
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, n issue.NewIssue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return &store.Error{Op: "insert", Err: f.insertErr}
	}
	f.inserted = append(f.inserted, n)
	f.rows = append(f.rows, issue.Issue{
		ID:            strconv.Itoa(f.next),
		Title:         n.Title,
		Description:   n.Description,
		Status:        n.Status,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.CreatedAt,
		ResponsibleID: n.ResponsibleID,
	})
	f.next++
	return nil
}

func (f *fakeStore) Update(_ context.Context, id string, p issue.Patch) error {
	f.mu.Lock()
	hook := f.updateHook
	f.mu.Unlock()
	if hook != nil {
		hook(id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fakeUpdate{ID: id, Patch: p})
	if f.updateErr != nil {
		return &store.Error{Op: "update", Err: f.updateErr}
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i] = p.Apply(f.rows[i])
			return nil
		}
	}
	return &store.Error{Op: "update", Err: store.ErrNotFound}
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return &store.Error{Op: "delete", Err: f.deleteErr}
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) Subscribe(_ context.Context, _ string, onChange func(realtime.Change)) (store.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribes++
	if f.subscribeErr != nil {
		return nil, &store.Error{Op: "subscribe", Err: f.subscribeErr}
	}
	f.onChange = onChange
	return &fakeSubscription{store: f}, nil
}

func (f *fakeStore) set(fn func(f *fakeStore)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeStore) ring() {
	f.mu.Lock()
	cb := f.onChange
	f.mu.Unlock()
	if cb != nil {
		cb(realtime.Change{Table: store.IssuesTable, Event: realtime.EventUpdate})
	}
}

func (f *fakeStore) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries
}

func (f *fakeStore) calls() (queries, inserts, updates, deletes, subscribes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries, len(f.inserted), len(f.updates), len(f.deleted), f.subscribes
}

type fakeSubscription struct {
	store *fakeStore
	once  sync.Once
}

func (s *fakeSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.store.mu.Lock()
		s.store.unsubs++
		s.store.onChange = nil
		s.store.mu.Unlock()
	})
}
