// Package assignment looks up the drivers and vendors eligible for a port.
package assignment

import (
	"context"

	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/apperror"
	"github.com/Kumarvenka/ship-app/internal/modules/auth"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
)

// Resolver finds assignees by port.
type Resolver interface {
	// FindByPortAndRole returns every principal with the role whose port name
	// matches exactly. role must be driver or vendor.
	FindByPortAndRole(ctx context.Context, portName string, role user.Role) ([]*user.User, error)

	// ListDriversForPort is FindByPortAndRole for drivers, callable by crew and admin.
	ListDriversForPort(ctx context.Context, caller *user.User, portName string) ([]*user.User, error)

	// ListVendorsForPort is FindByPortAndRole for vendors, callable by admin and crew.
	ListVendorsForPort(ctx context.Context, caller *user.User, portName string) ([]*user.User, error)

	// Eligible reports whether id names a principal with the role at portName.
	Eligible(ctx context.Context, id uuid.UUID, role user.Role, portName string) (bool, error)
}

type resolver struct {
	users user.Repository
}

// NewResolver creates a resolver backed by the principal store.
func NewResolver(users user.Repository) Resolver {
	return &resolver{users: users}
}

func (r *resolver) FindByPortAndRole(ctx context.Context, portName string, role user.Role) ([]*user.User, error) {
	if !role.RequiresPort() {
		return nil, apperror.ErrValidation("only drivers and vendors are assigned by port")
	}
	users, err := r.users.ListUsersByPortAndRole(ctx, portName, role)
	if err != nil {
		return nil, apperror.Internal(err, "failed to fetch "+role.String()+"s")
	}
	if users == nil {
		users = make([]*user.User, 0)
	}
	return users, nil
}

func (r *resolver) ListDriversForPort(ctx context.Context, caller *user.User, portName string) ([]*user.User, error) {
	if err := auth.Require(caller, user.RoleCrew, user.RoleAdmin); err != nil {
		return nil, err
	}
	return r.FindByPortAndRole(ctx, portName, user.RoleDriver)
}

func (r *resolver) ListVendorsForPort(ctx context.Context, caller *user.User, portName string) ([]*user.User, error) {
	if err := auth.Require(caller, user.RoleAdmin, user.RoleCrew); err != nil {
		return nil, err
	}
	return r.FindByPortAndRole(ctx, portName, user.RoleVendor)
}

func (r *resolver) Eligible(ctx context.Context, id uuid.UUID, role user.Role, portName string) (bool, error) {
	candidates, err := r.FindByPortAndRole(ctx, portName, role)
	if err != nil {
		return false, err
	}
	for _, c := range candidates {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}
