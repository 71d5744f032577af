package entity

// Role is carried in access tokens. Self-registered accounts get RoleUser.
type Role string

const RoleUser Role = "ROLE_USER"

func (r Role) String() string {
	return string(r)
}
