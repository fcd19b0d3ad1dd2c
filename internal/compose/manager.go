package compose

import (
	"context"
	"sync"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

// Manager tracks the live sessions of one composer process.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Controller
	deps     Deps
}

func NewManager(deps Deps) *Manager {
	return &Manager{
		sessions: make(map[string]*Controller),
		deps:     deps,
	}
}

// Open creates a session and registers it. A session whose edit hydration
// failed is still registered (it must remain closable); the error travels
// back alongside it.
func (m *Manager) Open(ctx context.Context, origin domain.Origin) (*Controller, error) {
	c, err := Open(ctx, origin, m.deps)
	if c == nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[c.Session().ID] = c
	m.mu.Unlock()
	return c, err
}

func (m *Manager) Get(id string) (*Controller, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.sessions[id]
	return c, ok
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
