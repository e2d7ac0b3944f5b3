package cache

import (
	"sync"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth"
)

// Cache maps raw access tokens to resolved user records. Keys are
// opaque and matched exactly, no normalization. Entries live for the
// process lifetime; the only eviction is an explicit Delete on logout.
type Cache interface {
	Get(token string) (*auth.User, bool)
	Set(token string, user *auth.User)
	Delete(token string)
}

// Memory is the in-process implementation. Unbounded by design: the
// entry count is bounded by distinct live tokens, and resolution
// correctness depends on hits never expiring underneath a session.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*auth.User
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*auth.User),
	}
}

func (m *Memory) Get(token string) (*auth.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.entries[token]
	return user, ok
}

func (m *Memory) Set(token string, user *auth.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[token] = user
}

func (m *Memory) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, token)
}
