package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthVerifier valida usuario y contraseña y devuelve claims o ErrInvalidCredentials.
type AuthVerifier interface {
	Verify(ctx context.Context, username, password string) (Claims, error)
}
