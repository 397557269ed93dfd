// Package static autentica contra dos usuarios fijos de configuración:
// un administrador y un invitado de solo lectura.
package static

import (
	"context"
	"crypto/subtle"
	"strings"

	"medistock/internal/ports/auth"
)

type User struct {
	Username string
	Password string
	Role     auth.Role
}

type Verifier struct {
	users []User
}

func NewVerifier(users ...User) *Verifier {
	out := make([]User, 0, len(users))
	for _, u := range users {
		u.Username = strings.TrimSpace(u.Username)
		if u.Username == "" || u.Password == "" {
			continue
		}
		out = append(out, u)
	}
	return &Verifier{users: out}
}

// Verify compara usuario sin distinguir mayúsculas y contraseña en tiempo constante.
func (v *Verifier) Verify(_ context.Context, username, password string) (auth.Claims, error) {
	username = strings.TrimSpace(username)
	for _, u := range v.users {
		if !strings.EqualFold(u.Username, username) {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
			return auth.Claims{}, auth.ErrInvalidCredentials
		}
		return auth.Claims{UserID: strings.ToLower(u.Username), Role: u.Role}, nil
	}
	return auth.Claims{}, auth.ErrInvalidCredentials
}
