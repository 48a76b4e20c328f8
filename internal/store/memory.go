// internal/store/memory.go
//
// In-memory implementation of Store.
// Used with DB_DRIVER=memory and in tests.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Values are copied on the way in and out.

package store

import (
	"context"
	"strings"
	"sync"

	"github.com/robalobadob/ecommerce-api/internal/shop"
)

type memory struct {
	mu         sync.RWMutex
	users      map[int64]shop.User
	byUsername map[string]int64 // lowercased username -> user ID
	items      []shop.Item
	carts      map[int64][]shop.Item // keyed by user ID
	orders     []shop.Order
	nextUserID int64
}

// NewMemoryStore constructs an in-memory Store holding catalog.
func NewMemoryStore(catalog []shop.Item) Store {
	return &memory{
		users:      make(map[int64]shop.User),
		byUsername: make(map[string]int64),
		items:      append([]shop.Item(nil), catalog...),
		carts:      make(map[int64][]shop.Item),
	}
}

func (m *memory) CreateUser(_ context.Context, u *shop.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(u.Username)
	if _, taken := m.byUsername[key]; taken {
		return ErrConflict
	}
	m.nextUserID++
	u.ID = m.nextUserID
	m.users[u.ID] = *u
	m.byUsername[key] = u.ID
	m.carts[u.ID] = []shop.Item{}
	return nil
}

func (m *memory) UserByID(_ context.Context, id int64) (*shop.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memory) UserByUsername(_ context.Context, username string) (*shop.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

func (m *memory) Items(_ context.Context) ([]shop.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]shop.Item{}, m.items...), nil
}

func (m *memory) ItemByID(_ context.Context, id int64) (*shop.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if it.ID == id {
			it := it
			return &it, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memory) ItemsByName(_ context.Context, name string) ([]shop.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []shop.Item{}
	for _, it := range m.items {
		if it.Name == name {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memory) Cart(_ context.Context, userID int64) (*shop.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c := shop.NewCart(userID)
	c.Items = append(c.Items, m.carts[userID]...)
	c.Recalculate()
	return c, nil
}

func (m *memory) SaveCart(_ context.Context, c *shop.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[c.ID]; !ok {
		return ErrNotFound
	}
	m.carts[c.ID] = append([]shop.Item{}, c.Items...)
	return nil
}

func (m *memory) CreateOrder(_ context.Context, o *shop.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[o.UserID]; !ok {
		return ErrNotFound
	}
	o.ID = int64(len(m.orders) + 1)
	stored := *o
	stored.Items = append([]shop.Item{}, o.Items...)
	m.orders = append(m.orders, stored)
	return nil
}

func (m *memory) OrdersByUser(_ context.Context, userID int64) ([]shop.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []shop.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			o.Items = append([]shop.Item{}, o.Items...)
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memory) Close() error { return nil }
