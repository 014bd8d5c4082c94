package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account. Only the username and
// password hash are written; the inbound plaintext never reaches this layer.
//
// Error handling:
//   - unique violation on username → [ErrUsernameAlreadyExists]
//   - any other driver-level error → wrapped as "unexpected DB error"
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.PasswordHash)

	var created models.User
	if err := row.Scan(&created.UserID, &created.Username, &created.PasswordHash, &created.TOTPSecret, &created.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation || sqliteUniqueViolation(err) {
			return models.User{}, ErrUsernameAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning created user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", r.db.classify(err))
	}

	return created, nil
}

// FindUserByUsername retrieves the user record whose username matches the
// given value, scanning all persisted fields into a fresh [models.User].
//
// Error handling:
//   - empty result ([sql.ErrNoRows]) → [ErrNoUserWasFound]
//   - any other driver-level error → wrapped as "unexpected DB error"
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByUsername, username)

	if err := row.Scan(&found.UserID, &found.Username, &found.PasswordHash, &found.TOTPSecret, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error: scanning found user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", r.db.classify(err))
	}

	return found, nil
}

// GetAllUsers lists every account ordered by id. Callers expose only
// identity fields; hashes and secrets stay inside the trust boundary.
func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetAllUsers").Msg("failed to execute query for listing users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)

	for rows.Next() {
		var user models.User

		if scanErr := rows.Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.TOTPSecret, &user.CreatedAt); scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.GetAllUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.GetAllUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// UpdatePasswordHash replaces the stored master-password hash, typically
// after an opportunistic rehash at login.
//
// A zero affected-row count means the user vanished between lookup and
// update and yields [ErrNoUserWasFound].
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserPasswordHash, passwordHash, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Int64("user_id", userID).Msg("failed to update password hash")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// UpdateTOTPSecret stores a new MFA secret for the account; an empty secret
// clears enrollment.
//
// A zero affected-row count yields [ErrNoUserWasFound].
func (r *userRepository) UpdateTOTPSecret(ctx context.Context, userID int64, totpSecret string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserTOTPSecret, totpSecret, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateTOTPSecret").Int64("user_id", userID).Msg("failed to update TOTP secret")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
