// internal/security/codec.go
//
// Token codec shared by the login and verification filters.
// Tokens are compact JWTs signed with HS512 over the configured secret:
//   - sub: username
//   - exp: issue time + Config.Expiration (NumericDate, whole seconds)
//   - iat, jti: informational
//
// Issuer and verifier live in the same process, so a symmetric key is enough.

package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Codec signs and verifies bearer tokens. It is immutable after construction
// and safe for concurrent use.
type Codec struct {
	key    []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customises a Codec.
type CodecOption func(*Codec)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a Codec from the security config.
func NewCodec(cfg Config, opts ...CodecOption) *Codec {
	c := &Codec{
		key: []byte(cfg.Secret),
		ttl: cfg.Expiration,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
		jwt.WithStrictDecoding(),
	)
	return c
}

// Encode returns a signed token for username expiring at issuedAt+Expiration.
func (c *Codec) Encode(username string, issuedAt time.Time) (string, error) {
	if username == "" {
		return "", ErrEmptySubject
	}
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Issue encodes a token for username at the codec's current time.
func (c *Codec) Issue(username string) (string, error) {
	return c.Encode(username, c.now())
}

// Decode verifies the signature and expiry of token and returns its subject.
// Every failure wraps ErrInvalidToken. A token whose exp is at or before the
// current time is expired.
func (c *Codec) Decode(token string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return c.key, nil
	}); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims.Subject, nil
}
