package profile

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store and ActivePointer, used in tests and
// when no database is available.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]*UserProfile
	active   string

	// FailSave, when set, is returned from every Save.
	FailSave error

	// FailSetActive, when set, is returned from every SetActiveProfileID.
	FailSetActive error
}

var (
	_ Store         = (*MemoryStore)(nil)
	_ ActivePointer = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*UserProfile)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, p *UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave != nil {
		return m.FailSave
	}
	m.profiles[p.ID] = p.Clone()
	return nil
}

func (m *MemoryStore) ActiveProfileID(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, nil
}

func (m *MemoryStore) SetActiveProfileID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSetActive != nil {
		return m.FailSetActive
	}
	m.active = id
	return nil
}

func (m *MemoryStore) ClearActiveProfileID(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = ""
	return nil
}
