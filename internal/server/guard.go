package server

import (
	"net/http"

	"github.com/hanifgold/sitecms/internal/store"
)

// loginPath is where unauthenticated requests to guarded routes are sent.
const loginPath = "/login"

// RequireAuth gates a route subtree on the store's session state. While the
// initial session resolution is still in flight the request is neither
// allowed nor redirected; the caller is told to retry.
func RequireAuth(s *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.AuthLoading() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session state not yet resolved", http.StatusServiceUnavailable)
				return
			}
			if !s.IsAuthenticated() {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
