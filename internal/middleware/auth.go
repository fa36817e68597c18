package middleware

import (
	"context"
	"net/http"

	"github.com/blogifyhq/blogify/internal/service/user"
)

// AuthCookieName is the cookie the signin flow sets.
const AuthCookieName = "token"

type contextKey struct{}

var identityKey contextKey

// Verifier validates a token string and reconstructs the caller identity.
type Verifier interface {
	Verify(token string) (user.Identity, error)
}

// Authenticate attaches the caller's identity to the request context when a
// valid token cookie is present. Absent or invalid tokens are not an error:
// the request proceeds anonymously and handlers decide what requires auth.
func Authenticate(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := verifier.Verify(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id user.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the authenticated identity, if any.
func IdentityFrom(ctx context.Context) (user.Identity, bool) {
	id, ok := ctx.Value(identityKey).(user.Identity)
	return id, ok
}
