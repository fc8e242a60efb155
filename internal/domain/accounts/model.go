package accounts

import "time"

// User es el usuario devuelto por el backend (/cadastro). La senha nunca se reenvía.
type User struct {
	ID          int64  `json:"id"`
	NomeUsuario string `json:"nomeUsuario"`
	Email       string `json:"email"`
}

type Credentials struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type Registration struct {
	NomeUsuario string `json:"nomeUsuario"`
	Email       string `json:"email"`
	Senha       string `json:"senha"`
}

// Session es el usuario logueado ya firmado.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}
