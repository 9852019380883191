package models

// User mirrors a row of the users table.
type User struct {
	UserID         string  `db:"user_id"`
	Name           string  `db:"name"`
	Email          string  `db:"email"`
	PasswordHash   *string `db:"password_hash"` // NULL for OAuth-only users
	AuthProvider   string  `db:"auth_provider"`
	ProviderUserID *string `db:"provider_user_id"`
	EmailVerified  bool    `db:"email_verified"`
	Timestamps
}
