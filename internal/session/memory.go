package session

import (
	"context"
	"sync"
	"time"

	"github.com/jafarshop/streamcheckout/internal/checkout"
)

type memoryEntry struct {
	session   *checkout.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Suitable for a single instance.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store; ttl <= 0 disables expiry
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*checkout.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.ttl > 0 && !m.now().Before(entry.expiresAt) {
		delete(m.entries, id)
		return nil, ErrSessionNotFound
	}
	return clone(entry.session), nil
}

func (m *MemoryStore) Save(ctx context.Context, s *checkout.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	m.entries[s.ID] = memoryEntry{
		session:   clone(s),
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Len returns the number of stored sessions, expired ones included
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// sweep drops expired entries. Caller holds mu.
func (m *MemoryStore) sweep() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for id, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, id)
		}
	}
}
