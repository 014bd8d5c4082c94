package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
)

// denyListRepository is the SQL-backed implementation of
// [DenyListRepository]. Revocations live in the "jwt_denylist" table, which
// gives read-after-write visibility through the database and survives
// restarts; the janitor worker prunes records past their token expiry.
type denyListRepository struct {
	*DB
	logger *logger.Logger
}

// NewDenyListRepository constructs a [DenyListRepository] backed by the
// provided database connection and logger.
func NewDenyListRepository(db *DB, logger *logger.Logger) DenyListRepository {
	return &denyListRepository{
		DB:     db,
		logger: logger,
	}
}

// Insert records token as revoked until expiresAt. The INSERT carries
// ON CONFLICT DO NOTHING, so revoking the same token twice is a no-op.
func (d *denyListRepository) Insert(ctx context.Context, token string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := d.DB.ExecContext(ctx, insertDenyListToken, token, expiresAt); err != nil {
		log.Err(err).
			Str("func", "denyListRepository.Insert").
			Msg("failed to insert denylist record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, d.classify(err))
	}

	return nil
}

// Contains reports whether token has been revoked.
func (d *denyListRepository) Contains(ctx context.Context, token string) (bool, error) {
	log := logger.FromContext(ctx)

	var revoked bool
	row := d.DB.QueryRowContext(ctx, containsDenyListToken, token)

	if err := row.Scan(&revoked); err != nil {
		log.Err(err).
			Str("func", "denyListRepository.Contains").
			Msg("failed to query denylist record")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, d.classify(err))
	}

	return revoked, nil
}

// DeleteExpired removes records whose token expiry is at or before now.
// Returns the number of rows pruned so the janitor can log its work.
func (d *denyListRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := d.DB.ExecContext(ctx, deleteExpiredDenyListTokens, now)
	if err != nil {
		log.Err(err).
			Str("func", "denyListRepository.DeleteExpired").
			Msg("failed to delete expired denylist records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, d.classify(err))
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}
