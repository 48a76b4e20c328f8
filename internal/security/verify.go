// internal/security/verify.go
//
// Verification filter: turns "<HeaderName>: <TokenPrefix><token>" into a
// Principal on the request context.
//
// It never rejects a request. Missing, foreign-scheme, invalid or expired
// tokens leave the request anonymous and the route's guard decides. Clients
// therefore cannot tell a rejected token from no token at all.

package security

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"
)

// VerificationFilter attaches a Principal for requests carrying a valid token.
type VerificationFilter struct {
	cfg   Config
	codec *Codec
	rec   Recorder
}

// NewVerificationFilter builds a VerificationFilter. rec may be nil.
func NewVerificationFilter(cfg Config, codec *Codec, rec Recorder) *VerificationFilter {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &VerificationFilter{cfg: cfg, codec: codec, rec: rec}
}

var _ Interceptor = (*VerificationFilter)(nil)

// Intercept always calls next, with a Principal attached when the token checks out.
func (f *VerificationFilter) Intercept(w http.ResponseWriter, r *http.Request, next http.Handler) {
	header := r.Header.Get(f.cfg.HeaderName)
	if header == "" || !strings.HasPrefix(header, f.cfg.TokenPrefix) {
		f.rec.TokenVerification(TokenAbsent)
		next.ServeHTTP(w, r)
		return
	}

	username, err := f.codec.Decode(strings.TrimPrefix(header, f.cfg.TokenPrefix))
	if err != nil || username == "" {
		f.rec.TokenVerification(TokenInvalid)
		hlog.FromRequest(r).Debug().Err(err).Msg("bearer token ignored")
		next.ServeHTTP(w, r)
		return
	}

	f.rec.TokenVerification(TokenVerified)
	p := &Principal{Username: username, Authorities: []string{}}
	next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
}
