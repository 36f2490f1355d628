package models

import (
	"fmt"
	"slices"
	"strings"
)

// Role is the fixed set of account roles. Stored and compared in lower case.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RolePRL      Role = "prl"
	RolePL       Role = "pl"
)

// Roles lists every valid role.
var Roles = []Role{RoleStudent, RoleLecturer, RolePRL, RolePL}

// ParseRole normalises s ("PRL", "Lecturer", " pl ") into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// CanSeeAll reports whether the role bypasses row scoping.
func (r Role) CanSeeAll() bool {
	return r == RolePL || r == RolePRL
}

// Identity is the authenticated caller, built from verified token claims only.
type Identity struct {
	UserID        int64
	Role          Role
	Name          string
	Email         string
	StudentNumber string
}
