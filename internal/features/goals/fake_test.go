package goals

import (
	"context"
	"sort"
	"sync"
)

// memoryRepository is an in-memory Repository for service and handler tests.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	goals  map[int64]Goal
	err    error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{goals: make(map[int64]Goal)}
}

func (m *memoryRepository) FindByID(_ context.Context, id int64) (*Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	g, ok := m.goals[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (m *memoryRepository) filter(keep func(Goal) bool) ([]Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []Goal{}
	for _, g := range m.goals {
		if keep(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepository) FindByUser(_ context.Context, userID string) ([]Goal, error) {
	return m.filter(func(g Goal) bool { return g.UserID == userID })
}

func (m *memoryRepository) FindByUserAndCompleted(_ context.Context, userID string, completed bool) ([]Goal, error) {
	return m.filter(func(g Goal) bool { return g.UserID == userID && g.Completed() == completed })
}

func (m *memoryRepository) Save(_ context.Context, goal *Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if goal.ID == 0 {
		m.nextID++
		goal.ID = m.nextID
	}
	m.goals[goal.ID] = *goal
	return nil
}

func (m *memoryRepository) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.goals, id)
	return nil
}
