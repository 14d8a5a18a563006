package product

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*Product
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, rows: map[int64]*Product{}}
}

func (m *memRepo) Create(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	p.CreatedAt = time.Now().Add(time.Duration(p.ID) * time.Millisecond)
	m.nextID++
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) List(_ context.Context) ([]*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Product, 0, len(m.rows))
	for _, p := range m.rows {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.rows[p.ID]
	if !ok {
		return ErrProductNotFound
	}
	p.CreatedAt = old.CreatedAt
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrProductNotFound
	}
	delete(m.rows, id)
	return nil
}
