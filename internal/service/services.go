package service

import (
	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/crypto"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/validators"
)

type Services struct {
	AuthService  AuthService
	TOTPService  TOTPService
	TokenService TokenService
	EntryService EntryService
}

func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	validator := validators.NewCredentialValidator()
	hasher := crypto.NewPasswordHasher(cfg.Crypto.Argon2Time, cfg.Crypto.Argon2Memory, cfg.Crypto.Argon2Parallelism)
	authenticator := crypto.NewTotpAuthenticator(cfg.Auth.TOTPIssuer)

	return &Services{
		AuthService:  NewAuthService(repositories.UserRepository, validator, hasher, logger),
		TOTPService:  NewTOTPService(repositories.UserRepository, authenticator, logger),
		TokenService: NewTokenService(repositories.DenyListRepository, cfg.Auth, logger),
		EntryService: NewEntryService(repositories.EntryRepository, repositories.UserRepository, validator, logger),
	}
}
