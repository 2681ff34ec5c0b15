package domain

// Role is one of the two fixed account roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Toggle flips between the two fixed roles.
func (r Role) Toggle() Role {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

// UserAccount is an account row as reported by the admin API.
type UserAccount struct {
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// AuthResult is what the server returns on successful login or registration.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
