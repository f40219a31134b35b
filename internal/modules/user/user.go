package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of principal roles.
type Role string

const (
	RoleCrew   Role = "crew"
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
	RoleDriver Role = "driver"
)

// ParseRole returns the Role named by s. Surrounding whitespace is ignored;
// otherwise the match is exact and case-sensitive.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleCrew, RoleAdmin, RoleVendor, RoleDriver:
		return r, true
	}
	return "", false
}

// RequiresPort reports whether principals with this role must belong to a port.
func (r Role) RequiresPort() bool {
	return r == RoleVendor || r == RoleDriver
}

func (r Role) String() string { return string(r) }

// User is a registered principal. Records are immutable after registration.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	PortName     string    `json:"portName,omitempty"` // set only for vendors and drivers
	ShipName     string    `json:"shipName,omitempty"` // set only for crew
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the public projection of a user embedded in request listings.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	PortName string    `json:"portName,omitempty"`
}

// Summary returns the public projection of u.
func (u *User) Summary() *Summary {
	if u == nil {
		return nil
	}
	return &Summary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, PortName: u.PortName}
}

// RegisterInput is the payload for creating a new principal.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	PortName string `json:"portName,omitempty"`
	ShipName string `json:"shipName,omitempty"`
}
