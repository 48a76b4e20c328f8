// internal/account/account.go
//
// Account registration and credential checks.
// Responsibilities:
//   - Validate and register new users (bcrypt password hashes, empty cart).
//   - Authenticate username/password pairs for the login filter.
//   - Look users up for the user endpoints.

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/ecommerce-api/internal/security"
	"github.com/robalobadob/ecommerce-api/internal/shop"
	"github.com/robalobadob/ecommerce-api/internal/store"
)

// ErrInvalidSignup is returned when registration input breaks the rules below.
var ErrInvalidSignup = errors.New("invalid signup")

const (
	minUsername = 3
	maxUsername = 24
	minPassword = 7
	maxPassword = 72 // bcrypt ignores anything past 72 bytes
)

// Service manages accounts on top of a user store.
type Service struct {
	users store.Users
	cost  int
	now   func() time.Time

	// dummyHash is compared against when the user does not exist so unknown
	// and known usernames take similar time.
	dummyHash []byte
}

// Option customises a Service.
type Option func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost (tests use bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService constructs a Service.
func NewService(users store.Users, opts ...Option) (*Service, error) {
	s := &Service{users: users, cost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	s.dummyHash = h
	return s, nil
}

var _ security.Authenticator = (*Service)(nil)

// Register validates input, hashes the password and stores a new user.
// Duplicate usernames (case-insensitive) return store.ErrConflict.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*shop.User, error) {
	username = normalizeUsername(username)
	if err := validateSignup(username, password, confirm); err != nil {
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &shop.User{
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    s.now().UTC().Truncate(time.Second),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate implements security.Authenticator.
func (s *Service) Authenticate(ctx context.Context, username, password string) (security.Identity, error) {
	u, err := s.users.UserByUsername(ctx, normalizeUsername(username))
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return security.Identity{}, fmt.Errorf("unknown user %q: %w", username, security.ErrAuthentication)
	}
	if err != nil {
		return security.Identity{}, fmt.Errorf("find user: %w", err)
	}
	if !checkPassword(u.PasswordHash, password) {
		return security.Identity{}, fmt.Errorf("password mismatch for %q: %w", u.Username, security.ErrAuthentication)
	}
	return security.Identity{Username: u.Username}, nil
}

// UserByID returns the user with id or store.ErrNotFound.
func (s *Service) UserByID(ctx context.Context, id int64) (*shop.User, error) {
	return s.users.UserByID(ctx, id)
}

// UserByUsername returns the user named username or store.ErrNotFound.
func (s *Service) UserByUsername(ctx context.Context, username string) (*shop.User, error) {
	return s.users.UserByUsername(ctx, normalizeUsername(username))
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p, confirm string) error {
	if len(u) < minUsername || len(u) > maxUsername {
		return fmt.Errorf("%w: username must be %d-%d chars", ErrInvalidSignup, minUsername, maxUsername)
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return fmt.Errorf("%w: username: letters, numbers, underscore only", ErrInvalidSignup)
		}
	}
	if len(p) < minPassword || len(p) > maxPassword {
		return fmt.Errorf("%w: password must be %d-%d bytes", ErrInvalidSignup, minPassword, maxPassword)
	}
	if p != confirm {
		return fmt.Errorf("%w: passwords do not match", ErrInvalidSignup)
	}
	return nil
}
