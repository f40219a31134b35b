package auth

import (
	"net/http"

	"github.com/Kumarvenka/ship-app/internal/apperror"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
	"github.com/Kumarvenka/ship-app/internal/platform/web"
)

// Require returns an AuthorizationError unless p holds one of the allowed roles.
func Require(p *user.User, allowed ...user.Role) error {
	if p == nil {
		return apperror.ErrAuthorization("forbidden: access denied")
	}
	for _, role := range allowed {
		if p.Role == role {
			return nil
		}
	}
	return apperror.ErrAuthorization("forbidden: access denied")
}

// RequireRoles gates a route to the allowed roles. It must run after
// Gate.Authenticate.
func RequireRoles(allowed ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := PrincipalFromContext(r.Context())
			if err := Require(p, allowed...); err != nil {
				web.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
