package httpx

import (
	"net/http"
	"strings"
)

// RequireAnyScope passes when the caller holds at least one listed scope.
func RequireAnyScope(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, s := range required {
		want[s] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, s := range scopesFromCtx(r.Context()) {
				if _, ok := want[s]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeBearerScopeError(w, required...)
		})
	}
}

// RequireAllScopes passes only when the caller holds every listed scope.
func RequireAllScopes(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := make(map[string]struct{})
			for _, s := range scopesFromCtx(r.Context()) {
				have[s] = struct{}{}
			}
			for _, req := range required {
				if _, ok := have[req]; !ok {
					writeBearerScopeError(w, required...)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-compliant error response for insufficient_scope.
func writeBearerScopeError(w http.ResponseWriter, required ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient_scope"))
}
