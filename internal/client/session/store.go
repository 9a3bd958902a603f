package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store holds the credential token. Every operation is atomic on its own;
// concurrent writers are not reconciled and the last write wins.
type Store interface {
	// Get returns the stored token or "" when absent.
	Get(ctx context.Context) (string, error)
	// Set persists token, replacing any previous one.
	Set(ctx context.Context, token string) error
	// Clear removes the token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}

// Timestamped is implemented by stores that record when the token was
// written. SavedAt returns the zero time when no token is stored.
type Timestamped interface {
	SavedAt(ctx context.Context) (time.Time, error)
}

// Kind names a Store implementation in configuration.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindFile   Kind = "file"
	KindMemory Kind = "memory"
)

// ParseKind validates a configured store kind. An empty name selects sqlite.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case "":
		return KindSQLite, nil
	case KindSQLite, KindFile, KindMemory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown session store %q (want sqlite, file or memory)", name)
	}
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
