package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth resolves the calling user from the bearer access token exactly once
// per request and stores the resolved user in the request context. Every
// authentication failure yields the same generic 401; a disabled account is
// a differentiated 403 because identity is already proven at that point.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
				return
			}

			user, err := authService.ResolveAccessToken(r.Context(), parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token resolution failed: %v", err)
				http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
				return
			}

			if !user.IsActive {
				http.Error(w, domain.ErrAccountDisabled.Error(), http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the user resolved by Auth for this request.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
