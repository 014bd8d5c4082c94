// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-vault/internal/crypto"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
)

// totpService is the concrete implementation of TOTPService. It keeps the
// per-account TOTP secret in the user repository and delegates all RFC 6238
// work to a crypto.TotpAuthenticator.
type totpService struct {
	userRepository store.UserRepository
	authenticator  crypto.TotpAuthenticator
	logger         *logger.Logger
}

// NewTOTPService constructs a TOTPService wired to the given UserRepository
// and authenticator.
func NewTOTPService(userRepository store.UserRepository, authenticator crypto.TotpAuthenticator, logger *logger.Logger) TOTPService {
	return &totpService{
		userRepository: userRepository,
		authenticator:  authenticator,
		logger:         logger,
	}
}

// Setup enrolls the account into MFA: it generates a fresh secret, stores
// it, and renders the provisioning URI as a PNG QR code for authenticator
// apps. Enrollment is effective immediately — a subsequent login requires
// the second factor even if the QR code was never scanned.
//
// Returns store.ErrNoUserWasFound for an unknown account.
func (t *totpService) Setup(ctx context.Context, username string) ([]byte, error) {
	log := logger.FromContext(ctx)

	user, err := t.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	secret, err := t.authenticator.GenerateSecret()
	if err != nil {
		log.Err(err).Str("func", "totpService.Setup").Msg("failed to generate TOTP secret")
		return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	if err := t.userRepository.UpdateTOTPSecret(ctx, user.UserID, secret); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to store TOTP secret")
		return nil, fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	png, err := t.authenticator.QRCodePNG(secret, user.Username)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to render provisioning QR code")
		return nil, fmt.Errorf("failed to render provisioning QR code: %w", err)
	}

	return png, nil
}

// Verify checks the second factor for an enrolled account.
//
// Error contract:
//   - store.ErrNoUserWasFound — unknown account.
//   - ErrTOTPNotEnrolled — account exists but carries no secret.
//   - ErrInvalidTOTPCode — the code does not match within the allowed skew.
func (t *totpService) Verify(ctx context.Context, username, code string) error {
	log := logger.FromContext(ctx)

	if code == "" {
		return ErrInvalidTOTPCode
	}

	user, err := t.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if !user.MFAEnabled() {
		return ErrTOTPNotEnrolled
	}

	ok, err := t.authenticator.VerifyCode(user.TOTPSecret, code)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("TOTP verification failed to run")
		return fmt.Errorf("TOTP verification failed to run: %w", err)
	}
	if !ok {
		log.Warn().Int64("user_id", user.UserID).Msg("wrong one-time code")
		return ErrInvalidTOTPCode
	}

	return nil
}
