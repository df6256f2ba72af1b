package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"liquidtrack/internal/domain/realtime"
)

const (
	realtimePath = "/api/v1/realtime"
	ackTimeout   = 10 * time.Second

	defaultRedialMin = 500 * time.Millisecond
	defaultRedialMax = 30 * time.Second
)

type wsSubscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Unsubscribe останавливает чтение и переподключения и дожидается их завершения.
func (s *wsSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Subscribe открывает websocket и ждет подтверждения подписки. При обрыве
// соединение восстанавливается с экспоненциальной паузой, а после каждого
// восстановления onChange вызывается один раз: изменения за время обрыва
// могли быть пропущены.
func (s *HTTPStore) Subscribe(ctx context.Context, table string, onChange func(realtime.Change)) (Subscription, error) {
	conn, err := s.dial(ctx, table)
	if err != nil {
		return nil, err
	}

	rctx, rcancel := context.WithCancel(context.Background())
	sub := &wsSubscription{cancel: rcancel, done: make(chan struct{})}
	go s.run(rctx, sub, conn, table, onChange)

	s.log.Debug("Подписка на изменения оформлена", "table", table)
	return sub, nil
}

// dial подключается и читает подтверждение подписки.
func (s *HTTPStore) dial(ctx context.Context, table string) (*websocket.Conn, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, &Error{Op: "subscribe", Err: ErrUnauthenticated}
	}

	endpoint, err := realtimeURL(s.baseURL, table)
	if err != nil {
		return nil, &Error{Op: "subscribe", Err: err}
	}

	conn, resp, err := websocket.Dial(ctx, endpoint, &websocket.DialOptions{
		HTTPHeader: http.Header{
			"Apikey":        {s.apiKey},
			"Authorization": {"Bearer " + token},
			"User-Agent":    {userAgent},
		},
	})
	if err != nil {
		e := &Error{Op: "subscribe", Err: err}
		if resp != nil {
			e.Status = resp.StatusCode
			if resp.StatusCode == http.StatusUnauthorized {
				e.Err = ErrUnauthenticated
			}
		}
		return nil, e
	}

	actx, cancel := context.WithTimeout(ctx, ackTimeout)
	defer cancel()
	var ack realtime.Message
	if err := wsjson.Read(actx, conn, &ack); err != nil || ack.Type != realtime.MessageSubscribed {
		conn.CloseNow()
		if err == nil {
			err = fmt.Errorf("unexpected message %q", ack.Type)
		}
		return nil, &Error{Op: "subscribe", Err: err}
	}
	return conn, nil
}

func (s *HTTPStore) run(ctx context.Context, sub *wsSubscription, conn *websocket.Conn, table string, onChange func(realtime.Change)) {
	defer close(sub.done)
	for {
		err := s.read(ctx, conn, table, onChange)
		conn.Close(websocket.StatusNormalClosure, "unsubscribe")
		if ctx.Err() != nil {
			return
		}
		s.log.Warn("Поток изменений прерван, переподключаемся", "table", table, "error", err)

		conn, err = s.redial(ctx, table)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				// перезагрузка получит ту же ошибку и закроет сессию
				onChange(realtime.Change{Table: table})
				s.log.Warn("Переподключение отклонено, подписка остановлена", "table", table)
			}
			return
		}
		s.log.Info("Поток изменений восстановлен", "table", table)
		onChange(realtime.Change{Table: table, At: time.Now().UTC()})
	}
}

// redial повторяет подключение до успеха, отмены или отказа в доступе.
func (s *HTTPStore) redial(ctx context.Context, table string) (*websocket.Conn, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.redialMin
	exp.Multiplier = 2
	exp.MaxInterval = s.redialMax
	exp.MaxElapsedTime = 0
	exp.Reset()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(exp.NextBackOff()):
		}

		conn, err := s.dial(ctx, table)
		if err == nil {
			return conn, nil
		}
		if errors.Is(err, ErrUnauthenticated) || ctx.Err() != nil {
			return nil, err
		}
		s.log.Debug("Переподключение не удалось", "table", table, "error", err)
	}
}

func (s *HTTPStore) read(ctx context.Context, conn *websocket.Conn, table string, onChange func(realtime.Change)) error {
	for {
		var msg realtime.Message
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}
		if msg.Type != realtime.MessageChange {
			continue
		}
		change := realtime.Change{Table: table}
		if msg.Change != nil {
			change = *msg.Change
		}
		onChange(change)
	}
}

func realtimeURL(base, table string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse store url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported store url scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + realtimePath
	u.RawQuery = url.Values{"table": {table}}.Encode()
	return u.String(), nil
}
