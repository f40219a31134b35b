package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for principal storage.
type Repository interface {
	// CreateUser persists a new user. A duplicate email yields a ConflictError.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByEmail returns a NotFoundError when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID returns a NotFoundError when the id is unknown.
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// ListUsersByPortAndRole returns every user with the role whose port name
	// matches exactly (case-sensitive).
	ListUsersByPortAndRole(ctx context.Context, portName string, role Role) ([]*User, error)

	// ListUsersByIDs returns the users among ids that exist, in no particular order.
	ListUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)
}

// Directory resolves ids to public summaries. Unknown ids are left out of the map.
func Directory(ctx context.Context, repo Repository, ids []uuid.UUID) (map[uuid.UUID]*Summary, error) {
	out := make(map[uuid.UUID]*Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return out, nil
	}
	users, err := repo.ListUsersByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u.Summary()
	}
	return out, nil
}
