// internal/security/login.go
//
// Login filter: exchanges JSON credentials for a bearer token.
//
//   POST <LoginPath> {"username": "...", "password": "..."}
//     200 + "<HeaderName>: <TokenPrefix><token>"  credentials accepted
//     400                                         body is not valid JSON
//     401                                         credentials rejected
//
// Every other request is passed to next untouched.

package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

const maxLoginBody = 1 << 20

// Authenticator checks a username/password pair. Rejections must wrap
// ErrAuthentication; any other error is treated as an internal failure.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Identity, error)
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginFilter issues tokens for accepted credentials.
type LoginFilter struct {
	cfg   Config
	codec *Codec
	auth  Authenticator
	rec   Recorder
}

// NewLoginFilter builds a LoginFilter. rec may be nil.
func NewLoginFilter(cfg Config, codec *Codec, auth Authenticator, rec Recorder) *LoginFilter {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &LoginFilter{cfg: cfg, codec: codec, auth: auth, rec: rec}
}

var _ Interceptor = (*LoginFilter)(nil)

// Intercept handles POST LoginPath and forwards everything else.
func (f *LoginFilter) Intercept(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if r.Method != http.MethodPost || r.URL.Path != f.cfg.LoginPath {
		next.ServeHTTP(w, r)
		return
	}
	log := hlog.FromRequest(r)

	creds, err := readCredentials(w, r)
	if err != nil {
		f.rec.LoginAttempt(LoginMalformed)
		log.Debug().Err(err).Msg("login body rejected")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	id, err := f.authenticate(r.Context(), creds)
	if err != nil {
		if errors.Is(err, ErrAuthentication) {
			f.rec.LoginAttempt(LoginRejected)
			log.Info().Str("username", creds.Username).Msg("login rejected")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		f.rec.LoginAttempt(LoginFailed)
		log.Error().Err(err).Str("username", creds.Username).Msg("authenticate")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token, err := f.codec.Issue(id.Username)
	if err != nil {
		f.rec.LoginAttempt(LoginFailed)
		log.Error().Err(err).Str("username", id.Username).Msg("issue token")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	f.rec.LoginAttempt(LoginSucceeded)
	log.Info().Str("username", id.Username).Msg("login succeeded")
	w.Header().Set(f.cfg.HeaderName, f.cfg.TokenPrefix+token)
	w.WriteHeader(http.StatusOK)
}

func (f *LoginFilter) authenticate(ctx context.Context, creds Credentials) (Identity, error) {
	if creds.Username == "" {
		return Identity{}, fmt.Errorf("empty username: %w", ErrAuthentication)
	}
	id, err := f.auth.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return Identity{}, err
	}
	if id.Username == "" {
		return Identity{}, fmt.Errorf("authenticator returned no username: %w", ErrAuthentication)
	}
	return id, nil
}

func readCredentials(w http.ResponseWriter, r *http.Request) (Credentials, error) {
	var creds Credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBody)).Decode(&creds); err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return creds, nil
}
