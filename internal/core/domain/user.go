package domain

// AuthProvider names the mechanism a user signs in with.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a user of the application in the domain.
type User struct {
	UserID         string       `json:"userID"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"` // empty for OAuth-only users
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"`
	EmailVerified  bool         `json:"emailVerified"`
	Timestamps
}

// HasPassword reports whether the user can sign in with a local password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}
