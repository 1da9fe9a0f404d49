package users

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
)

// memoryRepository is an in-memory Repository for service and handler tests.
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]User
	saveErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: make(map[int64]User)}
}

func (m *memoryRepository) FindByID(_ context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memoryRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *User
	for _, u := range m.users {
		if u.Username == username && (found == nil || u.ID < found.ID) {
			u := u
			found = &u
		}
	}
	return found, nil
}

func (m *memoryRepository) FindAll(_ context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepository) Save(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if stored, ok := m.users[user.ID]; ok {
		user.Followers = stored.Followers
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryRepository) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *memoryRepository) AdjustFollowers(_ context.Context, id int64, delta int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	u.Followers += delta
	if u.Followers < 0 {
		u.Followers = 0
	}
	m.users[id] = u
	return &u, nil
}

// brokenStore fails every write.
type brokenStore struct{}

func (brokenStore) Save(context.Context, string, io.Reader) error {
	return errors.New("disk full")
}

func (brokenStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("disk unavailable")
}

func (brokenStore) Remove(context.Context, string) error { return nil }
