package security

import "time"

// Defaults applied by the config loader when a value is not provided.
const (
	DefaultExpiration  = 864_000_000 * time.Millisecond // 10 days
	DefaultHeaderName  = "Authorization"
	DefaultTokenPrefix = "Bearer "
	DefaultLoginPath   = "/login"
)

// Config is built once at startup and shared read-only by the codec and both
// filters. Issuance and verification must see the same values.
type Config struct {
	Secret      string        // HMAC key; never committed to source control
	Expiration  time.Duration // token lifetime, added to the issue time
	HeaderName  string        // request/response header carrying the token
	TokenPrefix string        // scheme label prepended to the token
	LoginPath   string        // path intercepted by the login filter (POST only)
}
