package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/inertia"
)

type contextKey string

const userClaimsKey contextKey = "user_claims"

const (
	CookieName = "jwt"
	LoginPath  = "/auth/google"
)

var ErrNoClaims = errors.New("no user claims in context")

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, userClaimsKey, claims)
	return config.WithUserID(ctx, claims.UserID)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			log.Debug("Request without auth token")
			unauthorized(w, r)
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Invalid auth token")
			unauthorized(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// unauthorized sends page visits to the login flow and answers API callers
// with 401.
func unauthorized(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		switch {
		case inertia.IsInertia(r):
			inertia.Location(w, LoginPath)
			return
		case strings.Contains(r.Header.Get("Accept"), "text/html"):
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
