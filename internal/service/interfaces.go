package service

import (
	"context"

	"github.com/MKhiriev/go-cred-vault/models"
)

// AuthService owns the master-credential lifecycle: account registration
// and password verification.
type AuthService interface {
	// Register validates the inbound credentials, hashes the master
	// password, and persists a new account. The returned user carries
	// server-assigned fields and no plaintext password.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the master password against the stored hash and
	// returns the persisted account on success. Unknown username and wrong
	// password both collapse to ErrInvalidCredentials. Callers must check
	// MFAEnabled() on the result before issuing a session token.
	Login(ctx context.Context, user models.User) (models.User, error)

	// GetAllUsers lists every registered account for the directory
	// endpoint; callers expose identity fields only.
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// TOTPService owns MFA enrollment and code verification.
type TOTPService interface {
	// Setup generates a fresh TOTP secret for the account, persists it,
	// and returns a PNG QR code of the provisioning URI.
	// Re-running setup replaces any previous secret.
	Setup(ctx context.Context, username string) ([]byte, error)

	// Verify checks a 6-digit code against the account's stored secret.
	// Returns store.ErrNoUserWasFound for an unknown account,
	// ErrTOTPNotEnrolled when the account has no secret, and
	// ErrInvalidTOTPCode when the code does not match.
	Verify(ctx context.Context, username, code string) error
}

// TokenService owns the session-token lifecycle: issuance, validation
// against both the signature and the revocation denylist, and revocation.
type TokenService interface {
	// Issue creates a signed session token for the given account.
	Issue(ctx context.Context, username string) (models.Token, error)

	// Validate reports whether tokenString is an acceptable session token.
	// Every failure mode — bad signature, expiry, wrong issuer, revoked,
	// or a denylist lookup error — collapses to ok=false; no detail about
	// why validation failed leaves this method.
	Validate(ctx context.Context, tokenString string) (models.Token, bool)

	// Revoke durably denylists tokenString until its natural expiry.
	// Revoking the same token twice is a no-op. An empty token yields
	// ErrEmptyToken; an undecodable one yields ErrTokenIsExpiredOrInvalid.
	Revoke(ctx context.Context, tokenString string) error
}

// EntryService owns vault-entry CRUD. Every operation resolves the
// authenticated username to its account and scopes all storage access to
// that account's id.
type EntryService interface {
	CreateEntry(ctx context.Context, username string, entry models.Entry) (models.Entry, error)
	GetAllEntries(ctx context.Context, username string) ([]models.Entry, error)
	GetEntry(ctx context.Context, username string, entryID int64) (models.Entry, error)
	UpdateEntry(ctx context.Context, username string, entry models.Entry) (models.Entry, error)
	DeleteEntry(ctx context.Context, username string, entryID int64) error
}
