// internal/store/store.go
//
// Persistence interfaces for the shop.
// Implementations:
//   - memory (this package): maps guarded by an RWMutex; state is lost on restart.
//   - sql (this package): sqlx over SQLite or Postgres.
//
// Lookups of missing records return ErrNotFound; duplicate usernames return
// ErrConflict. Returned values are copies and may be modified by the caller.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/ecommerce-api/internal/shop"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("conflict")
)

// Users persists accounts. Username lookups are case-insensitive.
type Users interface {
	// CreateUser inserts u, assigns u.ID and creates the user's empty cart.
	CreateUser(ctx context.Context, u *shop.User) error
	UserByID(ctx context.Context, id int64) (*shop.User, error)
	UserByUsername(ctx context.Context, username string) (*shop.User, error)
}

// Catalog serves items.
type Catalog interface {
	Items(ctx context.Context) ([]shop.Item, error)
	ItemByID(ctx context.Context, id int64) (*shop.Item, error)
	// ItemsByName returns items whose name matches exactly; possibly none.
	ItemsByName(ctx context.Context, name string) ([]shop.Item, error)
}

// Carts persists one cart per user.
type Carts interface {
	// Cart returns the user's cart; a user without items gets an empty cart.
	Cart(ctx context.Context, userID int64) (*shop.Cart, error)
	SaveCart(ctx context.Context, c *shop.Cart) error
}

// Orders persists submitted orders.
type Orders interface {
	// CreateOrder inserts o and assigns o.ID.
	CreateOrder(ctx context.Context, o *shop.Order) error
	// OrdersByUser returns a user's orders, oldest first.
	OrdersByUser(ctx context.Context, userID int64) ([]shop.Order, error)
}

// Store is the full persistence surface used by the server.
type Store interface {
	Users
	Catalog
	Carts
	Orders
	Close() error
}
