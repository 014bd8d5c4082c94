package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-cred-vault/models"
)

const (
	createUser = `INSERT INTO users (username, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, username, password_hash, totp_secret, created_at;`

	findUserByUsername = `SELECT user_id, username, password_hash, totp_secret, created_at
    FROM users
    WHERE username = $1;`

	getAllUsers = `SELECT user_id, username, password_hash, totp_secret, created_at
    FROM users
    ORDER BY user_id;`

	updateUserPasswordHash = `UPDATE users
    SET password_hash = $1
    WHERE user_id = $2;`

	updateUserTOTPSecret = `UPDATE users
    SET totp_secret = $1
    WHERE user_id = $2;`

	saveEntry = `INSERT INTO entries (user_id, application, application_username, password)
    VALUES ($1, $2, $3, $4)
    RETURNING entry_id, user_id, application, application_username, password, created_at, updated_at;`

	getAllEntries = `SELECT entry_id, user_id, application, application_username, password, created_at, updated_at
    FROM entries
    WHERE user_id = $1
    ORDER BY entry_id;`

	getEntry = `SELECT entry_id, user_id, application, application_username, password, created_at, updated_at
    FROM entries
    WHERE entry_id = $1 AND user_id = $2;`

	deleteEntry = `DELETE FROM entries
    WHERE entry_id = $1 AND user_id = $2;`

	insertDenyListToken = `INSERT INTO jwt_denylist (token, expires_at)
    VALUES ($1, $2)
    ON CONFLICT (token) DO NOTHING;`

	containsDenyListToken = `SELECT EXISTS (SELECT 1 FROM jwt_denylist WHERE token = $1);`

	deleteExpiredDenyListTokens = `DELETE FROM jwt_denylist
    WHERE expires_at <= $1;`
)

// entryReturningColumns is the RETURNING list shared by entry INSERT and
// UPDATE statements.
const entryReturningColumns = "entry_id, user_id, application, application_username, password, created_at, updated_at"

// buildUpdateEntryQuery dynamically builds a partial UPDATE for a vault
// entry: only the non-empty credential fields of update become SET clauses.
// updated_at always advances. Returns ErrNoFieldsToUpdate when nothing
// changed.
func buildUpdateEntryQuery(update models.Entry, now time.Time) (string, []any, error) {
	builder := sq.Update("entries").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", now)

	changed := false
	if update.Application != "" {
		builder = builder.Set("application", update.Application)
		changed = true
	}
	if update.ApplicationUsername != "" {
		builder = builder.Set("application_username", update.ApplicationUsername)
		changed = true
	}
	if update.Password != "" {
		builder = builder.Set("password", update.Password)
		changed = true
	}

	if !changed {
		return "", nil, ErrNoFieldsToUpdate
	}

	query, args, err := builder.
		Where(sq.Eq{"entry_id": update.EntryID, "user_id": update.UserID}).
		Suffix("RETURNING " + entryReturningColumns).
		ToSql()
	if err != nil {
		return "", nil, err
	}

	return query, args, nil
}
