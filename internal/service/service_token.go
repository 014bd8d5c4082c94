package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
	"github.com/MKhiriev/go-cred-vault/models"
)

// tokenService is the concrete implementation of TokenService. Tokens are
// HMAC-SHA256 JWTs carrying the account username as subject; revocations
// live in a durable denylist checked on every validation.
type tokenService struct {
	denyListRepository store.DenyListRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a TokenService wired to the given denylist
// repository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(denyListRepository store.DenyListRepository, cfg config.Auth, logger *logger.Logger) TokenService {
	return &tokenService{
		denyListRepository: denyListRepository,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		logger:             logger,
	}
}

// Issue creates a signed session token for the given account.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim and the username as "sub", and
// expires after tokenDuration.
func (t *tokenService) Issue(ctx context.Context, username string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.tokenIssuer, username, t.tokenDuration, t.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Validate checks the signature, issuer, and expiry of tokenString and then
// consults the revocation denylist.
//
// Every failure mode collapses to ok=false: a malformed token, a bad
// signature, an expired or foreign-issuer token, a revoked token, and even
// a denylist lookup error all look the same to the caller. Failures other
// than the lookup error are logged at debug level only, since probing with
// garbage tokens is routine background noise.
func (t *tokenService) Validate(ctx context.Context, tokenString string) (models.Token, bool) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, t.tokenSignKey, t.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("token failed validation")
		return models.Token{}, false
	}

	revoked, err := t.denyListRepository.Contains(ctx, tokenString)
	if err != nil {
		// fail closed: an unreachable denylist must not admit tokens
		log.Err(err).Str("func", "tokenService.Validate").Msg("denylist lookup failed")
		return models.Token{}, false
	}
	if revoked {
		log.Debug().Str("username", token.Username).Msg("revoked token presented")
		return models.Token{}, false
	}

	return token, true
}

// Revoke durably denylists tokenString until its natural expiry, after
// which the janitor worker prunes the record. The expiry is read without
// signature verification: revocation must work even for tokens this
// instance can no longer verify (e.g. after a key rotation).
//
// Revoking the same token twice is a no-op.
func (t *tokenService) Revoke(ctx context.Context, tokenString string) error {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return ErrEmptyToken
	}

	expiresAt, err := utils.ParseExpiryFromJWT(tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("cannot decode expiry of token to revoke")
		return ErrTokenIsExpiredOrInvalid
	}

	if err := t.denyListRepository.Insert(ctx, tokenString, expiresAt); err != nil {
		log.Err(err).Str("func", "tokenService.Revoke").Msg("failed to denylist token")
		return fmt.Errorf("failed to denylist token: %w", err)
	}

	return nil
}
