package domain

// Role is the access level of a user. Roles form a strict hierarchy:
// customer < admin < superAdmin.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// roleLevels maps each role to its position in the hierarchy.
var roleLevels = map[Role]int{
	RoleCustomer:   0,
	RoleAdmin:      1,
	RoleSuperAdmin: 2,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the role's position in the hierarchy. Unknown roles sit
// below customer so a corrupted record can never act as an admin.
func (r Role) Level() int {
	if lvl, ok := roleLevels[r]; ok {
		return lvl
	}
	return -1
}

// User models an account in the system. PasswordHash is never serialized
// on API responses; only the store's private record type writes it to disk.
type User struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
