package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same username already exists in the
	// database.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrEntryNotSaved is returned when an INSERT of a vault entry completes
	// without error but the number of affected rows is zero, indicating that
	// no data was actually persisted.
	ErrEntryNotSaved = errors.New("entry was not saved")

	// ErrEntryNotFound is returned when a query or update targets a vault
	// entry (identified by entry_id and user_id) that does not exist in the
	// database.
	ErrEntryNotFound = errors.New("entry was not found")

	// ErrNoFieldsToUpdate is returned when a partial entry update carries no
	// changed fields at all.
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrRetryable tags a database failure the connector's error classifier
	// considers transient (lost connection, deadlock rollback). Callers that
	// can repeat the operation, such as the denylist janitor, match it with
	// [errors.Is]; everything else treats it like any other failure.
	ErrRetryable = errors.New("retryable database error")
)
