// internal/security/interceptor.go
//
// Request interceptors and their composition.
// Each stage decides whether to answer the request itself or hand it to next;
// Chain wires stages in order into a regular chi/net-http middleware.

package security

import "net/http"

// Interceptor is one stage of the request pipeline.
type Interceptor interface {
	Intercept(w http.ResponseWriter, r *http.Request, next http.Handler)
}

// InterceptorFunc adapts a function to Interceptor.
type InterceptorFunc func(w http.ResponseWriter, r *http.Request, next http.Handler)

// Intercept calls f.
func (f InterceptorFunc) Intercept(w http.ResponseWriter, r *http.Request, next http.Handler) {
	f(w, r, next)
}

// Chain composes interceptors so the first one sees the request first.
func Chain(stages ...Interceptor) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		h := final
		for i := len(stages) - 1; i >= 0; i-- {
			h = wrap(stages[i], h)
		}
		return h
	}
}

func wrap(stage Interceptor, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stage.Intercept(w, r, next)
	})
}
