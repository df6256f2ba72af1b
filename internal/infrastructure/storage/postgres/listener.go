package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"liquidtrack/internal/domain/realtime"
)

// IssuesChannel - канал NOTIFY, в который пишет триггер issues_notify.
const IssuesChannel = "issues_changes"

const (
	reconnectMin = 500 * time.Millisecond
	reconnectMax = 30 * time.Second
)

// Publisher получает изменения из базы.
type Publisher interface {
	Publish(c realtime.Change)
}

// Listener держит отдельное соединение с LISTEN и пересылает уведомления в Publisher.
type Listener struct {
	pool    *pgxpool.Pool
	channel string
	table   string
	pub     Publisher
	log     *slog.Logger

	listenFn func(ctx context.Context, ready func()) error
	retryMin time.Duration
	retryMax time.Duration

	// OnNotify вызывается на каждое полученное уведомление.
	OnNotify func(event realtime.Event)
}

func NewListener(pool *pgxpool.Pool, pub Publisher, log *slog.Logger) *Listener {
	l := &Listener{
		pool:     pool,
		channel:  IssuesChannel,
		table:    "issues",
		pub:      pub,
		log:      log.With("component", "pg_listener", "channel", IssuesChannel),
		retryMin: reconnectMin,
		retryMax: reconnectMax,
	}
	l.listenFn = l.listen
	return l
}

// Run блокируется до отмены контекста, переподключаясь после ошибок с
// экспоненциальной паузой. После восстановления LISTEN подписчики получают
// одно изменение без события: уведомления за время обрыва потеряны.
func (l *Listener) Run(ctx context.Context) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = l.retryMin
	exp.Multiplier = 2
	exp.MaxInterval = l.retryMax
	exp.MaxElapsedTime = 0
	exp.Reset()

	recovering := false
	ready := func() {
		exp.Reset()
		if recovering {
			recovering = false
			l.log.Info("listener recovered, publishing catch-up change")
			l.pub.Publish(realtime.Change{Table: l.table, At: time.Now().UTC()})
		}
	}

	for {
		err := l.listenFn(ctx, ready)
		if ctx.Err() != nil {
			return
		}
		recovering = true
		wait := exp.NextBackOff()
		l.log.Warn("listener stopped, reconnecting", "error", err, "retry_in", wait)

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (l *Listener) listen(ctx context.Context, ready func()) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	l.log.Info("listening for changes")
	ready()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		change := l.decode(n.Payload)
		if l.OnNotify != nil {
			l.OnNotify(change.Event)
		}
		l.pub.Publish(change)
	}
}

type notifyPayload struct {
	Event string          `json:"event"`
	ID    json.RawMessage `json:"id"`
}

// decode не отбрасывает уведомление с нераспознанным телом: подписчику
// важен сам факт изменения.
func (l *Listener) decode(payload string) realtime.Change {
	c := realtime.Change{Table: l.table, At: time.Now().UTC()}

	var p notifyPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		l.log.Debug("unparsable notification payload", "payload", payload, "error", err)
		return c
	}
	c.Event = realtime.Event(p.Event)

	if len(p.ID) > 0 {
		var num int64
		if err := json.Unmarshal(p.ID, &num); err == nil {
			c.RecordID = strconv.FormatInt(num, 10)
		} else {
			var s string
			if json.Unmarshal(p.ID, &s) == nil {
				c.RecordID = s
			}
		}
	}
	return c
}
