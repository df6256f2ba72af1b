package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/client/advice"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/app/client/store"
	"liquidtrack/internal/domain/issue"
	"liquidtrack/internal/domain/realtime"
)

// DefaultDebounce - окно, в котором подряд идущие уведомления дают одну перезагрузку.
const DefaultDebounce = 150 * time.Millisecond

// Confirmer спрашивает подтверждение у пользователя.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc - Confirmer из функции.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// SyncService владеет локальным упорядоченным снимком проблем и держит его
// согласованным с хранилищем. Хранилище всегда право: любая ошибка записи
// чинится полной перезагрузкой.
type SyncService struct {
	store    store.Store
	advice   advice.Generator
	log      *slog.Logger
	debounce time.Duration
	now      func() time.Time

	mu        sync.RWMutex
	issues    []issue.Issue
	failed    bool
	loading   int
	started   uint64
	applied   uint64
	analyzing map[string]struct{}
	lang      i18n.Lang

	changes chan struct{}

	life        sync.Mutex
	active      bool
	onLoadError func(error)
	sub    store.Subscription
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSyncService(st store.Store, gen advice.Generator, log *slog.Logger, debounce time.Duration) *SyncService {
	if debounce < 0 {
		debounce = 0
	}
	return &SyncService{
		store:     st,
		advice:    gen,
		log:       log.With(slog.String("component", "sync")),
		debounce:  debounce,
		now:       time.Now,
		analyzing: make(map[string]struct{}),
		lang:      i18n.Default,
		changes:   make(chan struct{}, 1),
	}
}

// Load перечитывает всю коллекцию. Результат применяется, только если более
// поздняя загрузка еще не применена. При ошибке снимок сохраняется.
func (s *SyncService) Load(ctx context.Context) error {
	s.mu.Lock()
	s.started++
	gen := s.started
	s.loading++
	s.mu.Unlock()
	s.notify()

	list, err := s.store.Query(ctx, issue.Filter{}, issue.NewestFirst)
	if err == nil {
		issue.NewestFirst.Sort(list)
	}

	s.mu.Lock()
	s.loading--
	stale := gen <= s.applied
	if !stale {
		s.applied = gen
		if err != nil {
			s.failed = true
		} else {
			s.issues = list
			s.failed = false
		}
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.log.Warn("Ошибка загрузки проблем", "error", err, "stale", stale)
		return err
	}
	if stale {
		s.log.Debug("Результат устаревшей загрузки отброшен", "generation", gen)
	}
	return nil
}

// Create отправляет новую проблему. Снимок обновит перезагрузка по уведомлению.
func (s *SyncService) Create(ctx context.Context, title, description, responsibleID string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return fmt.Errorf("%w: title and description are required", ErrInvalidInput)
	}

	n := issue.NewIssue{
		Title:         title,
		Description:   description,
		Status:        issue.StatusNew,
		CreatedAt:     s.now().UTC(),
		ResponsibleID: responsibleID,
	}
	if err := s.store.Insert(ctx, n); err != nil {
		s.log.Error("Ошибка создания проблемы", "error", err)
		return err
	}
	s.log.Info("Проблема создана", "title", title)
	return nil
}

// Remove удаляет проблему после подтверждения. Отказ или ошибка подтверждения
// возвращают false без обращения к хранилищу.
func (s *SyncService) Remove(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	ok, err := confirm.Confirm(i18n.T(s.Lang(), i18n.ConfirmDelete))
	if err != nil || !ok {
		return false, nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error("Ошибка удаления проблемы", "id", id, "error", err)
		return false, err
	}
	s.log.Info("Проблема удалена", "id", id)
	return true, nil
}

// SetStatus меняет статус оптимистично. При ошибке хранилища снимок перечитывается.
func (s *SyncService) SetStatus(ctx context.Context, id string, status issue.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	return s.optimistic(ctx, id, issue.StatusPatch(status))
}

// SetResponsible - то же, что SetStatus, для ответственного.
func (s *SyncService) SetResponsible(ctx context.Context, id, responsibleID string) error {
	return s.optimistic(ctx, id, issue.ResponsiblePatch(responsibleID))
}

func (s *SyncService) optimistic(ctx context.Context, id string, p issue.Patch) error {
	s.applyLocal(id, p)

	if err := s.store.Update(ctx, id, p); err != nil {
		s.log.Error("Ошибка обновления, перечитываем снимок", "id", id, "error", err)
		_ = s.Load(ctx)
		return err
	}
	return nil
}

// RequestAdvice запрашивает совет и сохраняет его. Для одного id одновременно
// выполняется не больше одного запроса. Ошибка сохранения только логируется.
func (s *SyncService) RequestAdvice(ctx context.Context, is issue.Issue, lang i18n.Lang) (string, error) {
	s.mu.Lock()
	if _, busy := s.analyzing[is.ID]; busy {
		s.mu.Unlock()
		return "", ErrAnalysisInProgress
	}
	s.analyzing[is.ID] = struct{}{}
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		delete(s.analyzing, is.ID)
		s.mu.Unlock()
		s.notify()
	}()

	text := s.advice.Generate(ctx, is.Title, is.Description, lang)
	p := issue.AnalysisPatch(text)
	if err := s.store.Update(ctx, is.ID, p); err != nil {
		s.log.Error("Ошибка сохранения совета", "id", is.ID, "error", err)
		return text, nil
	}
	s.applyLocal(is.ID, p)
	return text, nil
}

func (s *SyncService) applyLocal(id string, p issue.Patch) {
	s.mu.Lock()
	changed := false
	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues[i] = p.Apply(s.issues[i])
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Issues возвращает копию снимка.
func (s *SyncService) Issues() []issue.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]issue.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

// Filtered применяет фильтр к копии снимка.
func (s *SyncService) Filtered(f issue.Filter) []issue.Issue {
	return f.Apply(s.Issues())
}

// Find ищет проблему в снимке.
func (s *SyncService) Find(id string) (issue.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, is := range s.issues {
		if is.ID == id {
			return is, true
		}
	}
	return issue.Issue{}, false
}

// Failed сообщает, завершилась ли последняя примененная загрузка ошибкой.
func (s *SyncService) Failed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failed
}

func (s *SyncService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

func (s *SyncService) Analyzing(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.analyzing[id]
	return ok
}

func (s *SyncService) Lang() i18n.Lang {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetLang задает язык подтверждений.
func (s *SyncService) SetLang(l i18n.Lang) {
	s.mu.Lock()
	s.lang = l
	s.mu.Unlock()
}

// Changes сигналит после каждого изменения состояния. Сигналы склеиваются.
func (s *SyncService) Changes() <-chan struct{} {
	return s.changes
}

func (s *SyncService) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Active сообщает, оформлена ли подписка.
func (s *SyncService) Active() bool {
	s.life.Lock()
	defer s.life.Unlock()
	return s.active
}

// OnLoadError задает обработчик ошибок фоновых перезагрузок. Вызывается в
// отдельной горутине, поэтому обработчику можно останавливать синхронизацию.
func (s *SyncService) OnLoadError(fn func(error)) {
	s.life.Lock()
	defer s.life.Unlock()
	s.onLoadError = fn
}

// Activate подписывается на изменения и выполняет первую загрузку. Подписка
// оформляется до загрузки, чтобы не пропустить изменения между ними.
func (s *SyncService) Activate(ctx context.Context) error {
	s.life.Lock()
	defer s.life.Unlock()
	if s.active {
		return nil
	}

	wctx, cancel := context.WithCancel(context.Background())
	reload := make(chan struct{}, 1)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.active = true
	go s.worker(wctx, reload, s.done, s.onLoadError)

	var errs []error
	sub, err := s.store.Subscribe(ctx, store.IssuesTable, func(c realtime.Change) {
		s.log.Debug("Уведомление об изменении", "event", c.Event, "id", c.RecordID)
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	if err != nil {
		s.log.Error("Не удалось подписаться на изменения", "error", err)
		errs = append(errs, err)
	}
	s.sub = sub

	if err := s.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// worker перечитывает снимок по уведомлениям. Уведомления, пришедшие в окне
// debounce, дают одну загрузку.
func (s *SyncService) worker(ctx context.Context, reload <-chan struct{}, done chan<- struct{}, onError func(error)) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-reload:
		}

		if s.debounce > 0 {
			t := time.NewTimer(s.debounce)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}
		select {
		case <-reload:
		default:
		}

		if err := s.Load(ctx); err != nil && onError != nil && ctx.Err() == nil {
			go onError(err)
		}
	}
}

// Deactivate освобождает подписку, останавливает перезагрузки и очищает снимок.
// Незавершенные загрузки после этого не применяются.
func (s *SyncService) Deactivate() {
	s.life.Lock()
	if !s.active {
		s.life.Unlock()
		return
	}
	s.active = false
	sub, cancel, done := s.sub, s.cancel, s.done
	s.sub, s.cancel, s.done = nil, nil, nil
	s.life.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	cancel()
	<-done

	s.mu.Lock()
	s.issues = nil
	s.failed = false
	s.applied = s.started
	s.mu.Unlock()
	s.notify()
	s.log.Debug("Синхронизация остановлена")
}
