package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"FundScope/internal/model"
)

// MemoryStore is an in-memory Store used in tests and when no database path
// is configured.
type MemoryStore struct {
	mu          sync.Mutex
	assumptions map[string]model.Assumptions
	deals       map[string][]model.Deal // per user, insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assumptions: make(map[string]model.Assumptions),
		deals:       make(map[string][]model.Deal),
	}
}

func (m *MemoryStore) LoadAssumptions(userID string) (*model.Assumptions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assumptions[userID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *MemoryStore) SaveAssumptions(userID string, a model.Assumptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assumptions[userID] = a
	return nil
}

func (m *MemoryStore) LoadDeals(userID string) ([]model.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deals := make([]model.Deal, len(m.deals[userID]))
	copy(deals, m.deals[userID])
	return deals, nil
}

func (m *MemoryStore) InsertDeal(userID string, d model.Deal) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d.ID = uuid.NewString()
	d.UserID = userID
	m.deals[userID] = append(m.deals[userID], d)
	return d.ID, nil
}

func (m *MemoryStore) DeleteDeal(userID, dealID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	deals := m.deals[userID]
	for i, d := range deals {
		if d.ID == dealID {
			m.deals[userID] = append(deals[:i], deals[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) ListUsers() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	for id := range m.assumptions {
		seen[id] = true
	}
	for id := range m.deals {
		seen[id] = true
	}

	users := make([]string, 0, len(seen))
	for id := range seen {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}

func (m *MemoryStore) Close() error { return nil }
