// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// SecurityContext is the authenticated identity attached to a request by the
// authorization gate. It is absent for anonymous requests.
type SecurityContext struct {
	UserID   int64
	Identity string
	Roles    RoleSet
}

// HasAnyRole reports whether the context holds at least one of required.
// A nil context holds no roles.
func (security *SecurityContext) HasAnyRole(required ...Role) bool {
	if security == nil {
		return false
	}
	return security.Roles.HasAny(required...)
}
