package domain

// Role enumerates the authorization levels issued by the identity service.
// Values are Portuguese because the identity service defines them.
type Role string

const (
	RoleAdministrator Role = "Administrador"
	RoleNormal        Role = "Normal"
)

// User is the account record owned by the identity service.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
