package auth

// Claims representa al usuario logueado extraído de la sesión.
type Claims struct {
	UserID string
	Name   string
	Email  string
}
