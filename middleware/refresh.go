package middleware

import (
	"context"
	"net/http"

	goIdentity "github.com/MrEthical07/goIdentity"
)

// RefreshCookieName is the cookie the refresh token travels in.
const RefreshCookieName = "refreshToken"

type refreshTokenContextKey struct{}

// RefreshTokenFromContext returns the raw refresh token [RefreshGuard]
// stored for this request.
func RefreshTokenFromContext(ctx context.Context) (string, bool) {
	tokenStr, ok := ctx.Value(refreshTokenContextKey{}).(string)
	return tokenStr, ok
}

// RefreshGuard returns middleware that reads the refresh-token cookie,
// verifies its signature and expiry, and stores both the identity and the
// raw token in the request context. Session-store revocation is checked
// later by Engine.Refresh, not here.
func RefreshGuard(engine *goIdentity.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			cookie, err := r.Cookie(RefreshCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := engine.ValidateRefresh(cookie.Value)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			ctx = context.WithValue(ctx, refreshTokenContextKey{}, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
