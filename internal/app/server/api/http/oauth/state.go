package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

const stateTTL = 10 * time.Minute

// stateStore хранит одноразовые значения state между login и callback.
type stateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

func newStateStore() *stateStore {
	return &stateStore{states: make(map[string]time.Time), now: time.Now}
}

func (s *stateStore) issue() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(stateTTL)
	return state, nil
}

// consume проверяет и удаляет state.
func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return !s.now().After(exp)
}
