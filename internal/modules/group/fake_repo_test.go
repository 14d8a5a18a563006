package group

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var errInjected = errors.New("injected failure")

// memRepo keeps rows in maps. InTx snapshots the maps and restores them when fn fails.
type memRepo struct {
	nextGroupID int64
	nextItemID  int64
	groups      map[uuid.UUID]*Group
	items       map[string]*Item

	failOnItemSKU string
}

func newMemRepo() *memRepo {
	return &memRepo{
		nextGroupID: 1,
		nextItemID:  1,
		groups:      map[uuid.UUID]*Group{},
		items:       map[string]*Item{},
	}
}

func copyGroup(g *Group) *Group {
	cp := *g
	cp.MainImageURLs = append([]string{}, g.MainImageURLs...)
	cp.MemberSKUs = append([]string{}, g.MemberSKUs...)
	return &cp
}

func copyItem(it *Item) *Item {
	cp := *it
	return &cp
}

func (m *memRepo) InTx(ctx context.Context, fn func(Repository) error) error {
	groups := map[uuid.UUID]*Group{}
	for k, g := range m.groups {
		groups[k] = copyGroup(g)
	}
	items := map[string]*Item{}
	for k, it := range m.items {
		items[k] = copyItem(it)
	}
	nextGroupID, nextItemID := m.nextGroupID, m.nextItemID

	if err := fn(m); err != nil {
		m.groups, m.items = groups, items
		m.nextGroupID, m.nextItemID = nextGroupID, nextItemID
		return err
	}
	return nil
}

func (m *memRepo) CreateGroup(_ context.Context, g *Group) error {
	g.ID = m.nextGroupID
	g.CreatedAt = time.Now().Add(time.Duration(g.ID) * time.Millisecond)
	m.nextGroupID++
	m.groups[g.UUID] = copyGroup(g)
	return nil
}

func (m *memRepo) GetGroup(_ context.Context, id uuid.UUID) (*Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return copyGroup(g), nil
}

func (m *memRepo) ListGroups(_ context.Context) ([]*Group, error) {
	out := []*Group{}
	for _, g := range m.groups {
		out = append(out, copyGroup(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) UpdateGroup(_ context.Context, g *Group) error {
	if _, ok := m.groups[g.UUID]; !ok {
		return ErrGroupNotFound
	}
	m.groups[g.UUID] = copyGroup(g)
	return nil
}

func (m *memRepo) DeleteGroup(_ context.Context, id uuid.UUID) error {
	if _, ok := m.groups[id]; !ok {
		return ErrGroupNotFound
	}
	delete(m.groups, id)
	return nil
}

func (m *memRepo) sortedItems() []*Item {
	out := []*Item{}
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memRepo) ListItems(_ context.Context, groupID uuid.UUID) ([]*Item, error) {
	out := []*Item{}
	for _, it := range m.sortedItems() {
		if it.GroupUUID == groupID {
			out = append(out, copyItem(it))
		}
	}
	return out, nil
}

func (m *memRepo) FindItem(_ context.Context, groupID uuid.UUID, sku string) (*Item, error) {
	for _, it := range m.sortedItems() {
		if it.GroupUUID == groupID && it.SKU == sku {
			return copyItem(it), nil
		}
	}
	return nil, ErrItemNotFound
}

func (m *memRepo) CreateItem(_ context.Context, it *Item) error {
	if it.SKU == m.failOnItemSKU {
		return errInjected
	}
	it.ID = m.nextItemID
	it.CreatedAt = time.Now()
	m.nextItemID++
	m.items[itemKey(it)] = copyItem(it)
	return nil
}

func (m *memRepo) UpdateItem(_ context.Context, it *Item) error {
	if _, ok := m.items[itemKey(it)]; !ok {
		return ErrItemNotFound
	}
	m.items[itemKey(it)] = copyItem(it)
	return nil
}

func (m *memRepo) DeleteItems(_ context.Context, groupID uuid.UUID) error {
	for k, it := range m.items {
		if it.GroupUUID == groupID {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *memRepo) DeleteItem(_ context.Context, id int64, sku string) error {
	key := itemKey(&Item{ID: id, SKU: sku})
	if _, ok := m.items[key]; !ok {
		return ErrItemNotFound
	}
	delete(m.items, key)
	return nil
}
