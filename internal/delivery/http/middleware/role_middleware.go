package middleware

import (
	"net/http"
)

// RequireStaff sends callers without staff rights back to the landing page.
// It expects RequireSession to have run first.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok || !claims.IsStaff {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
