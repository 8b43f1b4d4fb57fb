// Package authz holds the role-hierarchy decision functions. Every function
// is pure: callers resolve the acting user first and pass roles in, so the
// rules here stay trivially testable and free of I/O.
package authz

import "github.com/userhive/account-api/internal/core/domain"

// CanViewAllUsers reports whether actor may list every account.
func CanViewAllUsers(actor domain.Role) bool {
	return actor == domain.RoleAdmin || actor == domain.RoleSuperAdmin
}

// CanCreateAdmin reports whether actor may provision new admin accounts.
func CanCreateAdmin(actor domain.Role) bool {
	return actor == domain.RoleSuperAdmin
}

// CanDeleteUser reports whether actor may remove an account with the target
// role. A superAdmin has no ceiling and may delete anyone, including other
// superAdmins. Everyone else needs strictly higher rank than the target, so
// admins delete customers only and customers delete nobody.
func CanDeleteUser(actor, target domain.Role) bool {
	if actor == domain.RoleSuperAdmin {
		return true
	}
	return actor.Level() > target.Level() && actor.Level() > domain.RoleCustomer.Level()
}

// CanEditProfile reports whether actor may modify the target user's record
// through the self-service path.
func CanEditProfile(actorID, targetID string) bool {
	return actorID != "" && actorID == targetID
}
