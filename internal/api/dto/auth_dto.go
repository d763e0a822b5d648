package dto

// RegisterRequest payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the credential, its derived role and where the
// client should navigate next.
type LoginResponse struct {
	Token      string `json:"token"`
	Role       string `json:"role,omitempty"`
	RedirectTo string `json:"redirectTo"`
}

// SessionResponse is the current session snapshot for GET /auth/session.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	Initialized   bool   `json:"initialized"`
}
