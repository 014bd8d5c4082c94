package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/migrations"
)

// DB wraps the raw sql.DB connection with the error classifier and logger
// shared by all repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// sqlite marks connections whose schema was created inline at connect
	// time; goose migrations target PostgreSQL only.
	sqlite bool
}

// Connect opens the database selected by the DSN scheme: "postgres://" or
// "postgresql://" yields the PostgreSQL connector, anything else is treated
// as a local sqlite file path.
func Connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

// classify tags err with [ErrRetryable] when the connector's classifier
// deems the failure transient. Connections without a classifier (sqlite,
// test doubles) pass errors through unchanged.
func (db *DB) classify(err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrRetryable, err)
	}

	return err
}

// Migrate brings the PostgreSQL schema up to date via the embedded goose
// migrations. On sqlite connections it is a no-op: the schema was already
// created inline by the connector.
func (db *DB) Migrate() error {
	if db.sqlite {
		return nil
	}

	return migrations.Migrate(db.DB)
}
