package admin

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*Admin
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, rows: map[int64]*Admin{}}
}

func (m *memRepo) Create(_ context.Context, a *Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Username == a.Username {
			return ErrUsernameTaken
		}
	}
	a.ID = m.nextID
	a.CreatedAt = time.Now().Add(time.Duration(a.ID) * time.Millisecond)
	m.nextID++
	cp := *a
	m.rows[a.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return nil, ErrAdminNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) GetByUsername(_ context.Context, username string) (*Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (m *memRepo) List(_ context.Context) ([]*Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Admin{}
	for _, a := range m.rows {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, a *Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[a.ID]; !ok {
		return ErrAdminNotFound
	}
	cp := *a
	m.rows[a.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrAdminNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}
