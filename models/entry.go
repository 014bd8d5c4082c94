package models

import "time"

// Entry is a single stored credential: the username/password pair a user
// keeps for one application or site. Entries belong to exactly one user
// and are never shared between accounts.
type Entry struct {
	// EntryID is the unique identifier of the entry.
	EntryID int64 `json:"entry_id"`

	// UserID is the identifier of the owning user.
	// Not exposed via JSON: ownership is derived from the session token,
	// never from the request body.
	UserID int64 `json:"-"`

	// Application is the human-readable name of the service the
	// credential belongs to ("github.com", "corp VPN", ...).
	Application string `json:"application"`

	// ApplicationUsername is the login name used at that application.
	ApplicationUsername string `json:"application_username"`

	// Password is the stored application password.
	Password string `json:"password,omitempty"`

	// CreatedAt is the timestamp when the entry was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Entry model.
func (e Entry) TableName() string {
	return "entries"
}
