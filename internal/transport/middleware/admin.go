package middleware

import (
	"net/http"

	"github.com/heartmarshall/extrato-backend/internal/auth"
	"github.com/heartmarshall/extrato-backend/pkg/ctxutil"
)

// RequireAdmin rejects anonymous requests with 401 and authenticated
// non-admin requests with 403. It must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.SubjectFromCtx(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if ctxutil.RoleFromCtx(r.Context()) != auth.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
