package store

import "github.com/MKhiriev/go-cred-vault/internal/logger"

// Repositories aggregates every repository backed by the shared database
// connection.
type Repositories struct {
	UserRepository     UserRepository
	EntryRepository    EntryRepository
	DenyListRepository DenyListRepository
}

// NewRepositories wires all repositories over a single connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db, log),
		EntryRepository:    NewEntryRepository(db, log),
		DenyListRepository: NewDenyListRepository(db, log),
	}
}
