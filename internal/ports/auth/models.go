package auth

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// ParseRole devuelve el rol y si es conocido.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleGuest:
		return Role(s), true
	default:
		return "", false
	}
}

// Claims identifica al usuario autenticado del request.
type Claims struct {
	UserID string
	Role   Role
}
