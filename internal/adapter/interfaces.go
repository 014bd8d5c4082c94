// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the credential vault server.
//
// The primary abstraction is [ServerAdapter], which decouples command-line
// tooling from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-cred-vault/models"
)

// ServerAdapter defines transport-agnostic communication with the credential
// vault server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently held by the adapter, or an
	// empty string if none has been set.
	Token() string

	// Register creates a new account from the given credentials.
	Register(ctx context.Context, user models.User) (models.RegisterResponse, error)

	// Login authenticates the given credentials. When the account has TOTP
	// enrolled the returned response has MFARequired set and no token is
	// stored; the session must be completed with VerifyTOTP.
	Login(ctx context.Context, user models.User) (models.LoginResponse, error)

	// Logout revokes the held bearer token and clears it from the adapter.
	Logout(ctx context.Context) error

	// SetupTOTP enrolls the account in TOTP and returns the provisioning
	// QR code as PNG bytes.
	SetupTOTP(ctx context.Context, username string) ([]byte, error)

	// VerifyTOTP checks a TOTP code for the account. On success the issued
	// bearer token is stored via SetToken.
	VerifyTOTP(ctx context.Context, username, code string) (models.TOTPVerifyResponse, error)

	// CreateEntry stores a new vault entry for the authenticated account.
	CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)

	// GetAllEntries lists every vault entry of the authenticated account.
	GetAllEntries(ctx context.Context) ([]models.Entry, error)

	// GetEntry fetches a single vault entry by its identifier.
	GetEntry(ctx context.Context, entryID int64) (models.Entry, error)

	// UpdateEntry applies a partial update to an existing vault entry.
	// Zero-valued fields are left unchanged.
	UpdateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)

	// DeleteEntry removes a vault entry by its identifier.
	DeleteEntry(ctx context.Context, entryID int64) error
}
