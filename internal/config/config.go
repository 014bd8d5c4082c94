// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-cred-vault application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds session-token and MFA settings: signing key, issuer,
	// token lifetime, and the TOTP issuer label shown in authenticator apps.
	Auth Auth `envPrefix:"AUTH_"`

	// Crypto holds the argon2id cost parameters used for master-password
	// hashing.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged with the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds session-token and MFA configuration values.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential. There is no default: deployments must
	// provide it explicitly.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// TOTPIssuer is the issuer label embedded in TOTP provisioning URIs;
	// authenticator apps display it next to the account name.
	// Env: AUTH_TOTP_ISSUER
	TOTPIssuer string `env:"TOTP_ISSUER"`
}

// Crypto holds the argon2id cost parameters for master-password hashing.
// The parameters are embedded in every produced hash string, so changing
// them only affects new hashes; old hashes are upgraded opportunistically
// on the next successful login.
type Crypto struct {
	// Argon2Time is the number of argon2id iterations (time cost).
	// Env: CRYPTO_ARGON2_TIME
	Argon2Time uint32 `env:"ARGON2_TIME"`

	// Argon2Memory is the argon2id memory cost in KiB.
	// Env: CRYPTO_ARGON2_MEMORY
	Argon2Memory uint32 `env:"ARGON2_MEMORY"`

	// Argon2Parallelism is the argon2id lane count.
	// Env: CRYPTO_ARGON2_PARALLELISM
	Argon2Parallelism uint8 `env:"ARGON2_PARALLELISM"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. A "postgres://" (or
	// "postgresql://") scheme selects the PostgreSQL connector; anything
	// else is treated as a local sqlite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// PruneInterval is how often the denylist janitor deletes revocation
	// records whose tokens have expired (e.g. "10m").
	// Env: WORKERS_PRUNE_INTERVAL
	PruneInterval time.Duration `env:"PRUNE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaultConfig supplies the lowest-priority values merged under every
// explicit source. The token sign key intentionally has no default.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			TokenIssuer:   "go-cred-vault",
			TokenDuration: 30 * time.Minute,
			TOTPIssuer:    "go-cred-vault",
		},
		Crypto: Crypto{
			Argon2Time:        1,
			Argon2Memory:      64 * 1024,
			Argon2Parallelism: 4,
		},
		Storage: Storage{
			DB: DB{DSN: "vault.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			PruneInterval: 10 * time.Minute,
		},
	}
}
