package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kumarvenka/ship-app/internal/apperror"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
	"github.com/Kumarvenka/ship-app/internal/platform/web"
)

type principalKey struct{}

// WithPrincipal stores the calling principal in the context.
func WithPrincipal(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, principalKey{}, u)
}

// PrincipalFromContext extracts the calling principal from the context.
func PrincipalFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(principalKey{}).(*user.User)
	return u, ok && u != nil
}

// Gate resolves the bearer credential of each request into a principal.
type Gate struct {
	service Service
}

func NewGate(service Service) *Gate { return &Gate{service: service} }

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the resolved principal in the request context.
func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			web.Error(w, r, apperror.ErrAuthentication("not authorized, token missing"))
			return
		}
		u, err := g.service.ResolvePrincipal(r.Context(), token)
		if err != nil {
			web.Error(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), u)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
