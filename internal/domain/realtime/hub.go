package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Event - тип изменения строки таблицы.
type Event string

const (
	EventInsert Event = "INSERT"
	EventUpdate Event = "UPDATE"
	EventDelete Event = "DELETE"
)

// Change - уведомление об изменении. Подписчик использует его только как сигнал
// к перечитыванию, содержимое строки не передается.
type Change struct {
	Table    string    `json:"table"`
	Event    Event     `json:"event"`
	RecordID string    `json:"record_id,omitempty"`
	At       time.Time `json:"at"`
}

const subscriberBuffer = 16

// Hub раздает изменения всем активным подписчикам.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]chan Change
	log         *slog.Logger

	// OnCountChange вызывается после каждого изменения числа подписчиков.
	OnCountChange func(n int)
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]chan Change),
		log:         log.With(slog.String("component", "realtime_hub")),
	}
}

// Subscribe регистрирует подписчика. Канал закрывается в Unsubscribe.
func (h *Hub) Subscribe() (uuid.UUID, <-chan Change) {
	id := uuid.New()
	ch := make(chan Change, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[id] = ch
	n := len(h.subscribers)
	h.mu.Unlock()

	h.log.Debug("subscriber added", "subscriber_id", id, "subscribers", n)
	h.notifyCount(n)
	return id, ch
}

// Unsubscribe можно вызывать повторно.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	ch, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
		close(ch)
	}
	n := len(h.subscribers)
	h.mu.Unlock()

	if ok {
		h.log.Debug("subscriber removed", "subscriber_id", id, "subscribers", n)
		h.notifyCount(n)
	}
}

// Publish не блокируется: если буфер подписчика полон, уведомление для него
// отбрасывается. Для сигнала "перечитать" достаточно одного непрочитанного.
func (h *Hub) Publish(c Change) {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- c:
		default:
			h.log.Debug("subscriber buffer full, change dropped", "subscriber_id", id)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) notifyCount(n int) {
	if h.OnCountChange != nil {
		h.OnCountChange(n)
	}
}
