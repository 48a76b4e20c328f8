package security_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ecommerce-api/internal/security"
)

const testSecret = "test-secret-key-minimum-32-characters-long-for-hmac-512-signing"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func testConfig() security.Config {
	return security.Config{
		Secret:      testSecret,
		Expiration:  10 * time.Minute,
		HeaderName:  security.DefaultHeaderName,
		TokenPrefix: security.DefaultTokenPrefix,
		LoginPath:   security.DefaultLoginPath,
	}
}

func newCodec(t *testing.T, clock *fakeClock) *security.Codec {
	t.Helper()
	return security.NewCodec(testConfig(), security.WithClock(clock.Now))
}

var issuedAt = time.Unix(1_700_000_000, 0)

func TestCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, clock)

	for _, username := range []string{"alice", "bob_42", "x", "ünïcödé"} {
		token, err := codec.Encode(username, issuedAt)
		require.NoError(t, err)
		require.Len(t, strings.Split(token, "."), 3)

		for _, at := range []time.Duration{0, time.Second, 5 * time.Minute, 10*time.Minute - time.Nanosecond} {
			clock.t = issuedAt.Add(at)
			got, err := codec.Decode(token)
			require.NoError(t, err, "decode at +%s", at)
			assert.Equal(t, username, got)
		}
	}
}

func TestCodec_Expiry(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, clock)

	token, err := codec.Encode("alice", issuedAt)
	require.NoError(t, err)

	for _, at := range []time.Duration{10 * time.Minute, 10*time.Minute + time.Second, 24 * time.Hour} {
		clock.t = issuedAt.Add(at)
		_, err := codec.Decode(token)
		require.Error(t, err, "decode at +%s", at)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
		assert.ErrorIs(t, err, security.ErrAuthentication)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, clock)

	token, err := codec.Encode("alice", issuedAt)
	require.NoError(t, err)

	sigStart := strings.LastIndex(token, ".") + 1
	for i := sigStart; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		_, err := codec.Decode(tampered)
		assert.ErrorIs(t, err, security.ErrInvalidToken, "position %d", i)
	}
}

func TestCodec_TamperedPayload(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, clock)

	alice, err := codec.Encode("alice", issuedAt)
	require.NoError(t, err)
	mallory, err := codec.Encode("mallory", issuedAt)
	require.NoError(t, err)

	a := strings.Split(alice, ".")
	m := strings.Split(mallory, ".")
	spliced := strings.Join([]string{a[0], m[1], a[2]}, ".")

	_, err = codec.Decode(spliced)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestCodec_RejectsForeignTokens(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, clock)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}
	sign := func(t *testing.T, method jwt.SigningMethod, key interface{}, c jwt.Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, c).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
	}{
		{"other secret", sign(t, jwt.SigningMethodHS512, []byte("another-secret-another-secret-another-secret"), claims)},
		{"hs256 with same secret", sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims)},
		{"alg none", sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claims)},
		{"missing exp", sign(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{Subject: "alice"})},
		{"garbage", "not.a.jwt"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			assert.ErrorIs(t, err, security.ErrInvalidToken)
		})
	}
}

func TestCodec_EncodeEmptyUsername(t *testing.T) {
	codec := newCodec(t, &fakeClock{t: issuedAt})

	_, err := codec.Encode("", issuedAt)
	assert.ErrorIs(t, err, security.ErrEmptySubject)
}

func TestCodec_ExpiryClaim(t *testing.T) {
	codec := newCodec(t, &fakeClock{t: issuedAt})

	token, err := codec.Encode("alice", issuedAt)
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, issuedAt.Add(10*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestCodec_IssueUsesClock(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, clock)

	token, err := codec.Issue("alice")
	require.NoError(t, err)

	clock.t = issuedAt.Add(10 * time.Minute)
	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
