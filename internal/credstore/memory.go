package credstore

import (
	"context"
	"sync"
)

// MemoryStore keeps credentials in process memory only.
type MemoryStore struct {
	mu    sync.Mutex
	creds Credentials
	fail  error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return storeErr("save", s.fail)
	}
	if err := requireComplete(creds); err != nil {
		return err
	}
	s.creds = normalize(creds)
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return Credentials{}, storeErr("load", s.fail)
	}
	return normalize(s.creds), nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return storeErr("clear", s.fail)
	}
	s.creds = Credentials{}
	return nil
}

// SetFailure makes every subsequent call fail with err; nil restores normal
// behavior.
func (s *MemoryStore) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// Put stores creds as-is, bypassing validation. Tests use it to plant
// half-written records.
func (s *MemoryStore) Put(creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
}
