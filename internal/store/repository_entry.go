package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/models"
)

// entryRepository is the SQL-backed implementation of [EntryRepository].
// It executes all vault-entry CRUD operations against the "entries" table
// using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, entry_id, etc.).
type entryRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntryRepository constructs an [EntryRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	return &entryRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveEntry persists a new vault entry and returns the fully populated
// [models.Entry] with server-assigned fields (EntryID, CreatedAt, UpdatedAt).
func (p *entryRepository) SaveEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	log := logger.FromContext(ctx)

	row := p.DB.QueryRowContext(ctx, saveEntry, entry.UserID, entry.Application, entry.ApplicationUsername, entry.Password)

	var saved models.Entry
	if err := row.Scan(&saved.EntryID, &saved.UserID, &saved.Application, &saved.ApplicationUsername, &saved.Password, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "entryRepository.SaveEntry").
			Int64("user_id", entry.UserID).
			Msg("failed to execute insert for entry")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, p.classify(err))
	}

	return saved, nil
}

// GetAllEntries retrieves every vault entry owned by the given user.
//
// Returns an empty slice when no records are found.
func (p *entryRepository) GetAllEntries(ctx context.Context, userID int64) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := p.DB.QueryContext(ctx, getAllEntries, userID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "entryRepository.GetAllEntries").
			Int64("user_id", userID).
			Msg("failed to execute query for getting all user entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, p.classify(queryErr))
	}
	defer rows.Close()

	allEntries := make([]models.Entry, 0, 50)

	for rows.Next() {
		var entry models.Entry

		scanErr := rows.Scan(
			&entry.EntryID,
			&entry.UserID,
			&entry.Application,
			&entry.ApplicationUsername,
			&entry.Password,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entryRepository.GetAllEntries").
				Int64("user_id", userID).
				Msg("failed to scan entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		allEntries = append(allEntries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "entryRepository.GetAllEntries").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return allEntries, nil
}

// GetEntry retrieves a single vault entry by id, always scoped to its owner.
//
// An empty result yields [ErrEntryNotFound].
func (p *entryRepository) GetEntry(ctx context.Context, entryID, userID int64) (models.Entry, error) {
	log := logger.FromContext(ctx)

	var entry models.Entry
	row := p.DB.QueryRowContext(ctx, getEntry, entryID, userID)

	if err := row.Scan(&entry.EntryID, &entry.UserID, &entry.Application, &entry.ApplicationUsername, &entry.Password, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, ErrEntryNotFound
		}

		log.Err(err).
			Str("func", "entryRepository.GetEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to scan entry row")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

// UpdateEntry applies a partial update built by [buildUpdateEntryQuery]:
// only non-empty credential fields are written, updated_at always advances,
// and the WHERE clause pins both entry_id and user_id.
//
// Returns the updated row via RETURNING. A missing target yields
// [ErrEntryNotFound]; an update with no changed fields yields
// [ErrNoFieldsToUpdate].
func (p *entryRepository) UpdateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEntryQuery(entry, time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrNoFieldsToUpdate) {
			return models.Entry{}, err
		}

		log.Err(err).
			Str("func", "entryRepository.UpdateEntry").
			Int64("user_id", entry.UserID).
			Int64("entry_id", entry.EntryID).
			Msg("failed to build update query")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Entry
	row := p.DB.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&updated.EntryID, &updated.UserID, &updated.Application, &updated.ApplicationUsername, &updated.Password, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, ErrEntryNotFound
		}

		log.Err(err).
			Str("func", "entryRepository.UpdateEntry").
			Int64("user_id", entry.UserID).
			Int64("entry_id", entry.EntryID).
			Msg("failed to execute update for entry")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, p.classify(err))
	}

	return updated, nil
}

// DeleteEntry removes a single vault entry by id, scoped to its owner.
//
// A zero affected-row count yields [ErrEntryNotFound].
func (p *entryRepository) DeleteEntry(ctx context.Context, entryID, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, deleteEntry, entryID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.DeleteEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to execute delete for entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, p.classify(err))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
