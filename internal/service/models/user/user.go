package user

import (
	"errors"
	"time"
)

// Role is a staff member's position.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleDirector   Role = "DIRECTOR"
	RoleManager    Role = "MANAGER"
	RoleCashier    Role = "CASHIER"
	RoleCook       Role = "COOK"
)

var ErrInvalidRole = errors.New("invalid staff role")

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleDirector, RoleManager, RoleCashier, RoleCook:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// User represents a staff member. Orders reference the creating user.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	BranchID  int64     `json:"branchId,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
