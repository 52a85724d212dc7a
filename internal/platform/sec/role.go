// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidRole is returned when a role code or description is outside the closed enumeration.
var ErrInvalidRole = errors.New("sec: invalid role")

// # User Roles

// Role is the authorization profile granted to a person.
//
// The numeric value is the persisted code; [Role.Description] is the wire name
// carried in tokens and compared by role checks.
type Role int

const (
	// Unrestricted system access
	RoleAdmin Role = 0

	// Opens tickets and follows their progress
	RoleCliente Role = 1

	// Works tickets assigned by the helpdesk
	RoleTecnico Role = 2
)

var roleDescriptions = map[Role]string{
	RoleAdmin:   "ROLE_ADMIN",
	RoleCliente: "ROLE_CLIENTE",
	RoleTecnico: "ROLE_TECNICO",
}

// Code returns the persisted numeric code.
func (r Role) Code() int { return int(r) }

// Description returns the human-readable wire name (e.g. "ROLE_ADMIN").
func (r Role) Description() string {
	if d, ok := roleDescriptions[r]; ok {
		return d
	}
	return fmt.Sprintf("ROLE_UNKNOWN(%d)", int(r))
}

// String implements [fmt.Stringer].
func (r Role) String() string { return r.Description() }

// Valid reports whether r belongs to the enumeration.
func (r Role) Valid() bool {
	_, ok := roleDescriptions[r]
	return ok
}

// RoleFromCode maps a persisted code back to a [Role].
func RoleFromCode(code int) (Role, error) {
	r := Role(code)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: code %d", ErrInvalidRole, code)
	}
	return r, nil
}

// # Role Sets

// RoleSet is an immutable, ordered snapshot of roles.
//
// Members are deduplicated and kept in ascending code order, so two sets with
// the same members render identically. Every method returns copies; a RoleSet
// never aliases the slice it was built from.
type RoleSet struct {
	roles []Role
}

// NewRoleSet builds a set from the given roles. Invalid roles are dropped.
func NewRoleSet(roles ...Role) RoleSet {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if !r.Valid() {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return RoleSet{roles: out}
}

// RoleSetFromCodes builds a set from persisted codes, failing on any unknown code.
func RoleSetFromCodes(codes ...int) (RoleSet, error) {
	roles := make([]Role, 0, len(codes))
	for _, code := range codes {
		r, err := RoleFromCode(code)
		if err != nil {
			return RoleSet{}, err
		}
		roles = append(roles, r)
	}
	return NewRoleSet(roles...), nil
}

// With returns a new set containing the receiver's members plus extra.
func (s RoleSet) With(extra ...Role) RoleSet {
	return NewRoleSet(append(s.Roles(), extra...)...)
}

// Has reports whether r is a member.
func (s RoleSet) Has(r Role) bool {
	for _, member := range s.roles {
		if member == r {
			return true
		}
	}
	return false
}

// HasAny reports whether the set intersects required in at least one element.
func (s RoleSet) HasAny(required ...Role) bool {
	for _, r := range required {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Roles returns a copy of the members in code order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, len(s.roles))
	copy(out, s.roles)
	return out
}

// Codes returns the persisted codes in order.
func (s RoleSet) Codes() []int {
	out := make([]int, len(s.roles))
	for i, r := range s.roles {
		out[i] = r.Code()
	}
	return out
}

// Descriptions returns the wire names in order.
func (s RoleSet) Descriptions() []string {
	out := make([]string, len(s.roles))
	for i, r := range s.roles {
		out[i] = r.Description()
	}
	return out
}

// Equal reports whether both sets have the same members.
func (s RoleSet) Equal(other RoleSet) bool {
	if len(s.roles) != len(other.roles) {
		return false
	}
	for i := range s.roles {
		if s.roles[i] != other.roles[i] {
			return false
		}
	}
	return true
}
