package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cred-vault/models"
)

// UserRepository persists user accounts and their credential material.
type UserRepository interface {
	// CreateUser inserts a new account and returns it with server-assigned
	// fields populated. A duplicate username yields ErrUsernameAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername retrieves the account with the given username.
	// An empty result yields ErrNoUserWasFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// GetAllUsers lists every account (identity fields only are meant for
	// exposure; callers must not leak hashes or secrets).
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// UpdatePasswordHash replaces the stored master-password hash.
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error

	// UpdateTOTPSecret stores (or, with an empty secret, clears) the
	// account's MFA secret.
	UpdateTOTPSecret(ctx context.Context, userID int64, totpSecret string) error
}

// EntryRepository persists per-application credential entries. Ownership
// (user_id) is part of every WHERE clause: an entry is never visible to or
// mutable by anyone but its owner.
type EntryRepository interface {
	// SaveEntry inserts a new entry and returns it with server-assigned
	// fields populated.
	SaveEntry(ctx context.Context, entry models.Entry) (models.Entry, error)

	// GetAllEntries lists every entry owned by the given user.
	GetAllEntries(ctx context.Context, userID int64) ([]models.Entry, error)

	// GetEntry retrieves a single entry by id, scoped to its owner.
	// An empty result yields ErrEntryNotFound.
	GetEntry(ctx context.Context, entryID, userID int64) (models.Entry, error)

	// UpdateEntry applies a partial update: only the non-empty credential
	// fields of entry are written. Returns the updated row.
	// No changed fields yields ErrNoFieldsToUpdate; a missing target yields
	// ErrEntryNotFound.
	UpdateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)

	// DeleteEntry removes a single entry by id, scoped to its owner.
	// A missing target yields ErrEntryNotFound.
	DeleteEntry(ctx context.Context, entryID, userID int64) error
}

// DenyListRepository is the durable revocation denylist for session tokens.
// Revoked tokens stay listed until past their natural expiry, after which
// the janitor worker prunes them.
type DenyListRepository interface {
	// Insert records token as revoked until expiresAt. Inserting the same
	// token twice is a no-op, making revocation idempotent.
	Insert(ctx context.Context, token string, expiresAt time.Time) error

	// Contains reports whether token has been revoked.
	Contains(ctx context.Context, token string) (bool, error)

	// DeleteExpired removes records whose expiry is at or before now and
	// returns the number of rows pruned.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
