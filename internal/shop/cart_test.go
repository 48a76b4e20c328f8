package shop

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	round  = DefaultCatalog[0]
	square = DefaultCatalog[1]
)

func TestCart_AddRemove(t *testing.T) {
	c := NewCart(7)

	require.NoError(t, c.Add(round, 2))
	require.NoError(t, c.Add(square, 1))
	assert.Len(t, c.Items, 3)
	assert.Equal(t, Cents(299*2+199), c.Total)

	require.NoError(t, c.Remove(round, 1))
	assert.Equal(t, []Item{round, square}, c.Items)
	assert.Equal(t, Cents(299+199), c.Total)

	require.NoError(t, c.Remove(round, 5))
	assert.Equal(t, []Item{square}, c.Items)
	assert.Equal(t, Cents(199), c.Total)

	require.NoError(t, c.Remove(round, 1))
	assert.Equal(t, []Item{square}, c.Items)
}

func TestCart_InvalidQuantity(t *testing.T) {
	c := NewCart(1)

	assert.ErrorIs(t, c.Add(round, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(round, -3), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Remove(round, 0), ErrInvalidQuantity)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
}

func TestNewOrder_Snapshot(t *testing.T) {
	c := NewCart(3)
	require.NoError(t, c.Add(square, 2))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	o := NewOrder(3, c, now)
	require.NoError(t, c.Add(round, 1))

	assert.Equal(t, int64(3), o.UserID)
	assert.Len(t, o.Items, 2)
	assert.Equal(t, Cents(398), o.Total)
	assert.Equal(t, now, o.CreatedAt)
	assert.Len(t, c.Items, 3, "cart is left untouched by the order")
}

func TestMoney_JSON(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{Cents(299), "2.99"},
		{Cents(5000), "50.00"},
		{Cents(7), "0.07"},
		{Cents(0), "0.00"},
		{Cents(-150), "-1.50"},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(b))
	}
}
