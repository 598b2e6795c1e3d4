package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Identity es el usuario autenticado según el proveedor de identidad.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Providers OAuth conocidos.
const (
	ProviderGoogle = "google"
)
