package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/ecommerce-api/internal/account"
	"github.com/robalobadob/ecommerce-api/internal/security"
	"github.com/robalobadob/ecommerce-api/internal/shop"
	"github.com/robalobadob/ecommerce-api/internal/store"
)

func newService(t *testing.T) (*account.Service, store.Store) {
	t.Helper()
	st := store.NewMemoryStore(shop.DefaultCatalog)
	svc, err := account.NewService(st, account.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	return svc, st
}

func TestRegister(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Test ", "abcabcabc", "abcabcabc")
	require.NoError(t, err)
	assert.Equal(t, "Test", u.Username)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "abcabcabc", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("abcabcabc")))

	cart, err := st.Cart(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.Register(ctx, "test", "abcabcabc", "abcabcabc")
	assert.ErrorIs(t, err, store.ErrConflict)

	found, err := svc.UserByUsername(ctx, "Test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = svc.UserByUsername(ctx, "Test2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name, username, password, confirm string
	}{
		{"short username", "ab", "abcabcabc", "abcabcabc"},
		{"long username", "abcdefghijklmnopqrstuvwxy", "abcabcabc", "abcabcabc"},
		{"bad characters", "bob smith", "abcabcabc", "abcabcabc"},
		{"short password", "bobby", "abc", "abc"},
		{"long password", "bobby", string(make([]byte, 73)), string(make([]byte, 73))},
		{"mismatch", "bobby", "abcabcabc", "abcabcabd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			_, err := svc.Register(context.Background(), tt.username, tt.password, tt.confirm)
			assert.ErrorIs(t, err, account.ErrInvalidSignup)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "secret1", "secret1")
	require.NoError(t, err)

	id, err := svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, security.Identity{Username: "alice"}, id)

	id, err = svc.Authenticate(ctx, "ALICE", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username, "identity carries the stored username")

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, security.ErrAuthentication)

	_, err = svc.Authenticate(ctx, "mallory", "secret1")
	assert.ErrorIs(t, err, security.ErrAuthentication)
}

type brokenUsers struct{ store.Users }

func (brokenUsers) UserByUsername(context.Context, string) (*shop.User, error) {
	return nil, errors.New("connection refused")
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	svc, err := account.NewService(brokenUsers{}, account.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "alice", "secret1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, security.ErrAuthentication))
}
