package security

import "context"

// Identity is what an Authenticator returns for accepted credentials.
type Identity struct {
	Username string
}

// Principal is the authenticated caller for the duration of one request.
type Principal struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

// ctxPrincipalKey is the context key type for storing the Principal.
type ctxPrincipalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey{}, p)
}

// PrincipalFromContext returns the principal attached by the verification
// filter, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, _ := ctx.Value(ctxPrincipalKey{}).(*Principal)
	return p, p != nil
}
