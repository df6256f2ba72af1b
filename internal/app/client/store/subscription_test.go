package store

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidtrack/internal/domain/realtime"
)

func TestRealtimeURL(t *testing.T) {
	got, err := realtimeURL("https://store.example.com/", "issues")
	require.NoError(t, err)
	assert.Equal(t, "wss://store.example.com/api/v1/realtime?table=issues", got)

	got, err = realtimeURL("http://localhost:8080", "issues")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/api/v1/realtime?table=issues", got)

	_, err = realtimeURL("ftp://host", "issues")
	assert.Error(t, err)
}

func TestHTTPStore_Subscribe(t *testing.T) {
	release := make(chan struct{})
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, realtimePath, r.URL.Path)
		assert.Equal(t, "issues", r.URL.Query().Get("table"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		conn, err := websocket.Accept(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()
		_ = wsjson.Write(ctx, conn, realtime.Message{Type: realtime.MessageSubscribed, Table: "issues"})
		_ = wsjson.Write(ctx, conn, realtime.Message{
			Type:  realtime.MessageChange,
			Table: "issues",
			Change: &realtime.Change{
				Table:    "issues",
				Event:    realtime.EventUpdate,
				RecordID: "3",
			},
		})
		<-release
	}, "tok")
	defer close(release)

	changes := make(chan realtime.Change, 1)
	sub, err := s.Subscribe(context.Background(), IssuesTable, func(c realtime.Change) {
		changes <- c
	})
	require.NoError(t, err)

	select {
	case c := <-changes:
		assert.Equal(t, realtime.EventUpdate, c.Event)
		assert.Equal(t, "3", c.RecordID)
	case <-time.After(2 * time.Second):
		t.Fatal("change not delivered")
	}

	sub.Unsubscribe()
	sub.Unsubscribe()
}

func TestHTTPStore_SubscribeRejected(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "tok")

	_, err := s.Subscribe(context.Background(), IssuesTable, func(realtime.Change) {})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestHTTPStore_SubscribeRedials(t *testing.T) {
	var dials atomic.Int32
	release := make(chan struct{})
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		n := dials.Add(1)
		conn, err := websocket.Accept(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.CloseNow()

		_ = wsjson.Write(r.Context(), conn, realtime.Message{Type: realtime.MessageSubscribed, Table: "issues"})
		if n == 1 {
			conn.Close(websocket.StatusGoingAway, "restart")
			return
		}
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, "tok")
	defer close(release)
	s.redialMin = 10 * time.Millisecond

	changes := make(chan realtime.Change, 4)
	sub, err := s.Subscribe(context.Background(), IssuesTable, func(c realtime.Change) {
		changes <- c
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	select {
	case c := <-changes:
		assert.Equal(t, IssuesTable, c.Table)
	case <-time.After(2 * time.Second):
		t.Fatal("no change after reconnect")
	}
	assert.Equal(t, int32(2), dials.Load())
}

func TestHTTPStore_SubscribeRedialRejected(t *testing.T) {
	var dials atomic.Int32
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if dials.Add(1) > 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := websocket.Accept(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		_ = wsjson.Write(r.Context(), conn, realtime.Message{Type: realtime.MessageSubscribed, Table: "issues"})
		conn.Close(websocket.StatusGoingAway, "restart")
	}, "tok")
	s.redialMin = 10 * time.Millisecond

	changes := make(chan realtime.Change, 4)
	sub, err := s.Subscribe(context.Background(), IssuesTable, func(c realtime.Change) {
		changes <- c
	})
	require.NoError(t, err)

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("rejected reconnect must still request a reload")
	}

	select {
	case <-sub.(*wsSubscription).done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription still running")
	}
	assert.Equal(t, int32(2), dials.Load())
	sub.Unsubscribe()
}
