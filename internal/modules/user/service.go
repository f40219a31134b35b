package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	// RegisterUser validates the input, hashes the password and stores a new principal.
	RegisterUser(ctx context.Context, in RegisterInput) (*User, error)
}
