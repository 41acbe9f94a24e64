package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps candidates in process memory. It backs local runs
// without DATABASE_URL and the API tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Candidate
	seq   map[string]int
	next  int
	now   func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Candidate),
		seq:   make(map[string]int),
		now:   time.Now,
	}
}

func (m *MemoryStore) List(ctx context.Context, order Order) ([]Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(order, func(Candidate) bool { return true }), nil
}

func (m *MemoryStore) ListByPosition(ctx context.Context, position string) ([]Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(OrderCreatedDesc, func(c Candidate) bool { return c.Position == position }), nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := c.Clone()
	return &out, nil
}

func (m *MemoryStore) Create(ctx context.Context, c Candidate) (*Candidate, error) {
	created, err := m.BulkCreate(ctx, []Candidate{c})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

func (m *MemoryStore) BulkCreate(ctx context.Context, cs []Candidate) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		c = c.Clone()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Status == "" {
			c.Status = StatusNotHandled
		}
		c.CreatedAt = m.now()
		m.items[c.ID] = c
		m.seq[c.ID] = m.next
		m.next++
		out = append(out, c.Clone())
	}
	return out, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, u Update) (*Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Apply(&c)
	m.items[id] = c
	out := c.Clone()
	return &out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	delete(m.seq, id)
	return nil
}

// sorted expects the read lock to be held.
func (m *MemoryStore) sorted(order Order, keep func(Candidate) bool) []Candidate {
	out := make([]Candidate, 0, len(m.items))
	for _, c := range m.items {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := m.seq[out[i].ID], m.seq[out[j].ID]
		if order == OrderCreatedDesc {
			return a > b
		}
		return a < b
	})
	return out
}
