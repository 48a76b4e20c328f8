// internal/shop/types.go
//
// Core type definitions for the shop.
// Defines:
//   - Money: amounts in integer cents.
//   - User, Item, Cart, Order: the records exchanged with the store and clients.

package shop

import (
	"strconv"
	"time"
)

// Money is an amount in cents. It serialises as a JSON number with two
// decimals, e.g. 299 -> 2.99.
type Money int64

// Cents builds a Money value.
func Cents(c int64) Money { return Money(c) }

// String renders m as "2.99".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign, v = "-", -v
	}
	frac := strconv.FormatInt(v%100, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}
	return sign + strconv.FormatInt(v/100, 10) + "." + frac
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// User is a registered customer. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Item is a catalog entry.
type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Price       Money  `json:"price" db:"price_cents"`
	Description string `json:"description" db:"description"`
}

// Cart belongs to exactly one user; ID equals the owner's user ID.
// Items may contain the same item several times.
type Cart struct {
	ID    int64  `json:"id"`
	Items []Item `json:"items"`
	Total Money  `json:"total"`
}

// Order is an immutable snapshot of a cart at submission time.
type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Items     []Item    `json:"items"`
	Total     Money     `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}
