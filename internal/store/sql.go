// internal/store/sql.go
//
// sqlx-backed Store for SQLite and Postgres.
// Queries are written with "?" placeholders and rebound for the driver.
// Schema lives in internal/db/sql/<driver>.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/robalobadob/ecommerce-api/internal/shop"
)

type sqlStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open, migrated database handle. Close closes db.
func NewSQLStore(db *sqlx.DB) Store {
	return &sqlStore{db: db}
}

// userRow matches the users table shape.
type userRow struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}

func (r userRow) user() *shop.User {
	t, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return &shop.User{ID: r.ID, Username: r.Username, PasswordHash: r.PasswordHash, CreatedAt: t}
}

type orderRow struct {
	ID         int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	TotalCents int64  `db:"total_cents"`
	CreatedAt  string `db:"created_at"`
}

const userColumns = `id, username, password_hash, created_at`
const itemColumns = `id, name, price_cents, description`

func (s *sqlStore) CreateUser(ctx context.Context, u *shop.User) error {
	created := u.CreatedAt.UTC().Format(time.RFC3339)
	err := s.db.QueryRowxContext(ctx,
		s.db.Rebind(`INSERT INTO users (username, password_hash, created_at) VALUES (?,?,?) RETURNING id`),
		u.Username, u.PasswordHash, created,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *sqlStore) UserByID(ctx context.Context, id int64) (*shop.User, error) {
	var r userRow
	err := s.db.GetContext(ctx, &r, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id=?`), id)
	if err != nil {
		return nil, notFound(err, "select user")
	}
	return r.user(), nil
}

func (s *sqlStore) UserByUsername(ctx context.Context, username string) (*shop.User, error) {
	var r userRow
	err := s.db.GetContext(ctx, &r,
		s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE lower(username)=lower(?)`), username)
	if err != nil {
		return nil, notFound(err, "select user")
	}
	return r.user(), nil
}

func (s *sqlStore) Items(ctx context.Context) ([]shop.Item, error) {
	out := []shop.Item{}
	if err := s.db.SelectContext(ctx, &out, `SELECT `+itemColumns+` FROM items ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	return out, nil
}

func (s *sqlStore) ItemByID(ctx context.Context, id int64) (*shop.Item, error) {
	var it shop.Item
	err := s.db.GetContext(ctx, &it, s.db.Rebind(`SELECT `+itemColumns+` FROM items WHERE id=?`), id)
	if err != nil {
		return nil, notFound(err, "select item")
	}
	return &it, nil
}

func (s *sqlStore) ItemsByName(ctx context.Context, name string) ([]shop.Item, error) {
	out := []shop.Item{}
	err := s.db.SelectContext(ctx, &out,
		s.db.Rebind(`SELECT `+itemColumns+` FROM items WHERE name=? ORDER BY id`), name)
	if err != nil {
		return nil, fmt.Errorf("select items by name: %w", err)
	}
	return out, nil
}

func (s *sqlStore) Cart(ctx context.Context, userID int64) (*shop.Cart, error) {
	c := shop.NewCart(userID)
	err := s.db.SelectContext(ctx, &c.Items, s.db.Rebind(`
		SELECT i.id, i.name, i.price_cents, i.description
		FROM cart_items c JOIN items i ON i.id = c.item_id
		WHERE c.user_id=?
		ORDER BY c.id`), userID)
	if err != nil {
		return nil, fmt.Errorf("select cart: %w", err)
	}
	c.Recalculate()
	return c, nil
}

func (s *sqlStore) SaveCart(ctx context.Context, c *shop.Cart) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT 1 FROM users WHERE id=?`), c.ID); err != nil {
			return notFound(err, "select cart owner")
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM cart_items WHERE user_id=?`), c.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		insert := tx.Rebind(`INSERT INTO cart_items (user_id, item_id) VALUES (?,?)`)
		for _, it := range c.Items {
			if _, err := tx.ExecContext(ctx, insert, c.ID, it.ID); err != nil {
				return fmt.Errorf("insert cart item: %w", err)
			}
		}
		return nil
	})
}

func (s *sqlStore) CreateOrder(ctx context.Context, o *shop.Order) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			tx.Rebind(`INSERT INTO orders (user_id, total_cents, created_at) VALUES (?,?,?) RETURNING id`),
			o.UserID, int64(o.Total), o.CreatedAt.UTC().Format(time.RFC3339),
		).Scan(&o.ID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		insert := tx.Rebind(`INSERT INTO order_items (order_id, item_id, price_cents) VALUES (?,?,?)`)
		for _, it := range o.Items {
			if _, err := tx.ExecContext(ctx, insert, o.ID, it.ID, int64(it.Price)); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
}

func (s *sqlStore) OrdersByUser(ctx context.Context, userID int64) ([]shop.Order, error) {
	var rows []orderRow
	err := s.db.SelectContext(ctx, &rows,
		s.db.Rebind(`SELECT id, user_id, total_cents, created_at FROM orders WHERE user_id=? ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}

	itemsQuery := s.db.Rebind(`
		SELECT i.id, i.name, oi.price_cents, i.description
		FROM order_items oi JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id=?
		ORDER BY oi.id`)
	out := make([]shop.Order, 0, len(rows))
	for _, r := range rows {
		created, _ := time.Parse(time.RFC3339, r.CreatedAt)
		o := shop.Order{ID: r.ID, UserID: r.UserID, Total: shop.Money(r.TotalCents), CreatedAt: created, Items: []shop.Item{}}
		if err := s.db.SelectContext(ctx, &o.Items, itemsQuery, r.ID); err != nil {
			return nil, fmt.Errorf("select order %d items: %w", r.ID, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *sqlStore) Close() error { return s.db.Close() }

func (s *sqlStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
