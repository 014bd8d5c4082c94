package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/validators"
	"github.com/MKhiriev/go-cred-vault/models"
)

// entryService is the concrete implementation of EntryService.
//
// Every operation resolves the authenticated username (the token subject)
// to its persisted account first, then scopes all repository calls to that
// account's id. An entry can never be read or mutated across accounts.
type entryService struct {
	entryRepository store.EntryRepository
	userRepository  store.UserRepository

	// validator screens the credential fields of inbound entries.
	validator validators.Validator

	logger *logger.Logger
}

// NewEntryService constructs an EntryService wired to the given
// repositories and credential validator.
func NewEntryService(entryRepository store.EntryRepository, userRepository store.UserRepository, validator validators.Validator, logger *logger.Logger) EntryService {
	return &entryService{
		entryRepository: entryRepository,
		userRepository:  userRepository,
		validator:       validator,
		logger:          logger,
	}
}

// CreateEntry validates and persists a new vault entry for the account.
func (e *entryService) CreateEntry(ctx context.Context, username string, entry models.Entry) (models.Entry, error) {
	log := logger.FromContext(ctx)

	user, err := e.resolveAccount(ctx, username)
	if err != nil {
		return models.Entry{}, err
	}

	if err := e.validator.Validate(ctx, entry); err != nil {
		log.Error().Int64("user_id", user.UserID).Err(err).Msg("invalid entry data provided")
		return models.Entry{}, err
	}

	entry.UserID = user.UserID
	saved, err := e.entryRepository.SaveEntry(ctx, entry)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("entry creation ended with error")
		return models.Entry{}, fmt.Errorf("entry creation ended with error: %w", err)
	}

	return saved, nil
}

// GetAllEntries lists every vault entry owned by the account.
func (e *entryService) GetAllEntries(ctx context.Context, username string) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	user, err := e.resolveAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	entries, err := e.entryRepository.GetAllEntries(ctx, user.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("listing entries ended with error")
		return nil, fmt.Errorf("listing entries ended with error: %w", err)
	}

	return entries, nil
}

// GetEntry retrieves a single vault entry owned by the account.
// A missing or foreign entry yields store.ErrEntryNotFound.
func (e *entryService) GetEntry(ctx context.Context, username string, entryID int64) (models.Entry, error) {
	user, err := e.resolveAccount(ctx, username)
	if err != nil {
		return models.Entry{}, err
	}

	return e.entryRepository.GetEntry(ctx, entryID, user.UserID)
}

// UpdateEntry applies a partial update to one of the account's entries:
// only the non-empty credential fields of entry are written. Each provided
// field is validated; omitted fields are left untouched.
//
// Returns store.ErrNoFieldsToUpdate when no field was provided and
// store.ErrEntryNotFound when the target is missing or foreign.
func (e *entryService) UpdateEntry(ctx context.Context, username string, entry models.Entry) (models.Entry, error) {
	log := logger.FromContext(ctx)

	user, err := e.resolveAccount(ctx, username)
	if err != nil {
		return models.Entry{}, err
	}

	fields := make([]string, 0, 3)
	if entry.Application != "" {
		fields = append(fields, validators.FieldApplication)
	}
	if entry.ApplicationUsername != "" {
		fields = append(fields, validators.FieldApplicationUsername)
	}
	if entry.Password != "" {
		fields = append(fields, validators.FieldApplicationPassword)
	}
	if len(fields) == 0 {
		return models.Entry{}, store.ErrNoFieldsToUpdate
	}

	if err := e.validator.Validate(ctx, entry, fields...); err != nil {
		log.Error().Int64("user_id", user.UserID).Int64("entry_id", entry.EntryID).Err(err).Msg("invalid entry update provided")
		return models.Entry{}, err
	}

	entry.UserID = user.UserID
	return e.entryRepository.UpdateEntry(ctx, entry)
}

// DeleteEntry removes one of the account's entries.
// A missing or foreign entry yields store.ErrEntryNotFound.
func (e *entryService) DeleteEntry(ctx context.Context, username string, entryID int64) error {
	user, err := e.resolveAccount(ctx, username)
	if err != nil {
		return err
	}

	return e.entryRepository.DeleteEntry(ctx, entryID, user.UserID)
}

// resolveAccount maps the token subject back to its persisted account.
// An unknown subject means the account vanished after the token was issued
// and surfaces as ErrTokenIsExpiredOrInvalid, not as a lookup detail.
func (e *entryService) resolveAccount(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := e.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("resolving token subject failed")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	return user, nil
}
