package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique login identifier, expected to be an e-mail address.
	Username string `json:"username"`

	// Password carries the plaintext master password on inbound requests only.
	// It is hashed immediately after validation and MUST never be persisted
	// or logged.
	Password string `json:"password,omitempty"`

	// PasswordHash is the argon2id PHC hash string stored for the account.
	// The hash is self-describing: algorithm id, cost parameters, salt and
	// digest are all embedded in the string, so verification needs no
	// externally stored parameters.
	PasswordHash string `json:"-"`

	// TOTPSecret is the base32-encoded MFA secret. Empty when MFA is not
	// enrolled. A leak of this value defeats MFA entirely, so it is treated
	// with the same sensitivity as the password hash.
	TOTPSecret string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// MFAEnabled reports whether the account has a TOTP secret enrolled.
func (u User) MFAEnabled() bool {
	return u.TOTPSecret != ""
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
