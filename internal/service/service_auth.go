package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cred-vault/internal/crypto"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/validators"
	"github.com/MKhiriev/go-cred-vault/models"
)

// authService is the concrete implementation of AuthService.
// It validates inbound master credentials, hashes passwords with argon2id,
// and delegates persistence to a UserRepository.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validator screens master credentials before any hashing or storage.
	validator validators.Validator

	// hasher produces and checks self-describing argon2id hash strings.
	hasher crypto.PasswordHasher

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository, credential validator, and password hasher.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, validator validators.Validator, hasher crypto.PasswordHasher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validator,
		hasher:         hasher,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// The inbound username and master password are validated first; the password
// is then hashed with argon2id and only the hash is handed to the repository.
// The plaintext never reaches storage or logs.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - a validators sentinel if the username or password is malformed.
//   - store.ErrUsernameAlreadyExists if the username is taken.
//   - a wrapped storage error on any other repository failure.
func (a *authService) Register(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Username = validators.CleanInput(user.Username)
	if err := a.validator.Validate(ctx, user); err != nil {
		log.Error().Str("username", user.Username).Err(err).Msg("invalid registration data provided")
		return models.User{}, err
	}

	passwordHash, err := a.hasher.Hash(user.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("failed to hash master password")
		return models.User{}, fmt.Errorf("failed to hash master password: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     user.Username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			return models.User{}, err
		}

		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user against the stored argon2id hash.
//
// An unknown username and a wrong password are indistinguishable to the
// caller: both yield ErrInvalidCredentials. After a successful match the
// stored hash is opportunistically upgraded when its cost parameters are
// stale; an upgrade failure is logged but never fails the login.
//
// Callers must check MFAEnabled() on the returned user: an enrolled account
// has only passed the first factor at this point.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Username = validators.CleanInput(user.Username)
	if user.Username == "" || user.Password == "" {
		log.Error().Str("username", user.Username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, user.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("username", user.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.Verify(foundUser.PasswordHash, user.Password) {
		log.Warn().
			Int64("user_id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("wrong master password")
		return models.User{}, ErrInvalidCredentials
	}

	if a.hasher.NeedsRehash(foundUser.PasswordHash) {
		a.rehashPassword(ctx, &foundUser, user.Password)
	}

	return foundUser, nil
}

// GetAllUsers lists every registered account.
func (a *authService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := a.userRepository.GetAllUsers(ctx)
	if err != nil {
		log.Err(err).Str("func", "authService.GetAllUsers").Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

// rehashPassword upgrades the stored hash to the current cost parameters
// after a successful first-factor check. Best effort: the login proceeds on
// the old hash if anything here fails.
func (a *authService) rehashPassword(ctx context.Context, user *models.User, password string) {
	log := logger.FromContext(ctx)

	newHash, err := a.hasher.Hash(password)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("opportunistic rehash failed")
		return
	}

	if err := a.userRepository.UpdatePasswordHash(ctx, user.UserID, newHash); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("persisting rehashed password failed")
		return
	}

	user.PasswordHash = newHash
}
