package accounts

import (
	"context"
	"time"
)

// Repository es el backend remoto de cadastro de usuários.
type Repository interface {
	// FindByCredentials devuelve ErrUserNotFound ante cualquier status distinto de 200.
	FindByCredentials(ctx context.Context, c Credentials) (User, error)
	// RegisterUser devuelve ErrUsernameTaken si el backend responde con ese mensaje.
	RegisterUser(ctx context.Context, r Registration) error
}

// SessionIssuer firma el usuario logueado en un token persistible (cookie/bearer).
type SessionIssuer interface {
	Issue(u User) (token string, expiresAt time.Time, err error)
}
