package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kumarvenka/ship-app/internal/apperror"
)

type service struct {
	repo       Repository
	bcryptCost int
}

// NewService creates a new user service. A zero bcryptCost selects bcrypt.DefaultCost.
func NewService(repo Repository, bcryptCost int) Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{repo: repo, bcryptCost: bcryptCost}
}

func (s *service) RegisterUser(ctx context.Context, in RegisterInput) (*User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return nil, apperror.ErrValidation("all fields are required")
	}
	role, ok := ParseRole(in.Role)
	if !ok {
		return nil, apperror.ErrValidation("role must be one of crew, admin, vendor, driver")
	}
	if role.RequiresPort() && strings.TrimSpace(in.PortName) == "" {
		return nil, apperror.ErrValidation("port name is required for drivers and vendors")
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, apperror.ErrConflict("user already exists")
	}
	var nf *apperror.NotFoundError
	if !errors.As(err, &nf) {
		return nil, apperror.Internal(err, "signup failed")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.ErrInternal(err, "signup failed")
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	switch role {
	case RoleVendor, RoleDriver:
		user.PortName = in.PortName
	case RoleCrew:
		user.ShipName = strings.TrimSpace(in.ShipName)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, apperror.Internal(err, "signup failed")
	}
	return user, nil
}
