// Package auth issues and verifies bearer credentials and gates routes by role.
package auth

import (
	"context"
	"time"

	"github.com/Kumarvenka/ship-app/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Register creates a principal. See user.Service.RegisterUser.
	Register(ctx context.Context, in user.RegisterInput) (*user.User, error)

	// Login checks the password and issues a signed, time-bounded credential.
	Login(ctx context.Context, email, password string) (*Session, error)

	// ResolvePrincipal verifies a credential and loads the principal it names.
	ResolvePrincipal(ctx context.Context, token string) (*user.User, error)
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *user.User
}
