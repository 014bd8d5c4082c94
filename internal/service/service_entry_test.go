package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/validators"
	"github.com/MKhiriev/go-cred-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountLookup(userID int64) *mockUserRepository {
	return &mockUserRepository{
		findByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			return models.User{UserID: userID, Username: username}, nil
		},
	}
}

func newTestEntryService(entries *mockEntryRepository, users *mockUserRepository) EntryService {
	return NewEntryService(entries, users, validators.NewCredentialValidator(), logger.Nop())
}

func TestEntryService_CreateEntry_Success(t *testing.T) {
	entries := &mockEntryRepository{
		saveFn: func(_ context.Context, entry models.Entry) (models.Entry, error) {
			assert.Equal(t, int64(42), entry.UserID)
			entry.EntryID = 7
			return entry, nil
		},
	}
	svc := newTestEntryService(entries, accountLookup(42))

	saved, err := svc.CreateEntry(context.Background(), "alice@example.com", models.Entry{
		Application:         "github",
		ApplicationUsername: "octocat",
		Password:            "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.EntryID)
	assert.Equal(t, int64(42), saved.UserID)
}

func TestEntryService_CreateEntry_InjectionRisk(t *testing.T) {
	svc := newTestEntryService(&mockEntryRepository{}, accountLookup(42))

	_, err := svc.CreateEntry(context.Background(), "alice@example.com", models.Entry{
		Application:         "<script>alert(1)</script>",
		ApplicationUsername: "octocat",
		Password:            "s3cret-pass",
	})

	require.ErrorIs(t, err, validators.ErrInjectionRisk)
	require.ErrorIs(t, err, validators.ErrInvalidApplicationName)
}

func TestEntryService_CreateEntry_UnknownSubject(t *testing.T) {
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestEntryService(&mockEntryRepository{}, users)

	_, err := svc.CreateEntry(context.Background(), "ghost@example.com", models.Entry{
		Application:         "github",
		ApplicationUsername: "octocat",
		Password:            "s3cret-pass",
	})

	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestEntryService_GetAllEntries(t *testing.T) {
	entries := &mockEntryRepository{
		getAllFn: func(_ context.Context, userID int64) ([]models.Entry, error) {
			assert.Equal(t, int64(42), userID)
			return []models.Entry{{EntryID: 1}, {EntryID: 2}}, nil
		},
	}
	svc := newTestEntryService(entries, accountLookup(42))

	all, err := svc.GetAllEntries(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEntryService_GetEntry_ScopedToOwner(t *testing.T) {
	entries := &mockEntryRepository{
		getFn: func(_ context.Context, entryID, userID int64) (models.Entry, error) {
			assert.Equal(t, int64(7), entryID)
			assert.Equal(t, int64(42), userID)
			return models.Entry{EntryID: entryID, UserID: userID}, nil
		},
	}
	svc := newTestEntryService(entries, accountLookup(42))

	entry, err := svc.GetEntry(context.Background(), "alice@example.com", 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), entry.EntryID)
}

func TestEntryService_GetEntry_NotFound(t *testing.T) {
	entries := &mockEntryRepository{
		getFn: func(_ context.Context, _, _ int64) (models.Entry, error) {
			return models.Entry{}, store.ErrEntryNotFound
		},
	}
	svc := newTestEntryService(entries, accountLookup(42))

	_, err := svc.GetEntry(context.Background(), "alice@example.com", 404)

	require.ErrorIs(t, err, store.ErrEntryNotFound)
}

func TestEntryService_UpdateEntry_PartialFields(t *testing.T) {
	entries := &mockEntryRepository{
		updateFn: func(_ context.Context, entry models.Entry) (models.Entry, error) {
			assert.Equal(t, int64(42), entry.UserID)
			assert.Equal(t, "rotated-pass", entry.Password)
			assert.Empty(t, entry.Application)
			return entry, nil
		},
	}
	svc := newTestEntryService(entries, accountLookup(42))

	_, err := svc.UpdateEntry(context.Background(), "alice@example.com", models.Entry{
		EntryID:  7,
		Password: "rotated-pass",
	})

	require.NoError(t, err)
}

func TestEntryService_UpdateEntry_NoFields(t *testing.T) {
	svc := newTestEntryService(&mockEntryRepository{}, accountLookup(42))

	_, err := svc.UpdateEntry(context.Background(), "alice@example.com", models.Entry{EntryID: 7})

	require.ErrorIs(t, err, store.ErrNoFieldsToUpdate)
}

func TestEntryService_UpdateEntry_ValidatesOnlyProvidedFields(t *testing.T) {
	entries := &mockEntryRepository{
		updateFn: func(_ context.Context, entry models.Entry) (models.Entry, error) {
			return entry, nil
		},
	}
	svc := newTestEntryService(entries, accountLookup(42))

	// only the application name is provided and only it is screened
	_, err := svc.UpdateEntry(context.Background(), "alice@example.com", models.Entry{
		EntryID:     7,
		Application: "gitlab",
	})
	require.NoError(t, err)

	_, err = svc.UpdateEntry(context.Background(), "alice@example.com", models.Entry{
		EntryID:     7,
		Application: "<iframe src=x>",
	})
	require.ErrorIs(t, err, validators.ErrInjectionRisk)
}

func TestEntryService_DeleteEntry(t *testing.T) {
	deleted := false
	entries := &mockEntryRepository{
		deleteFn: func(_ context.Context, entryID, userID int64) error {
			assert.Equal(t, int64(7), entryID)
			assert.Equal(t, int64(42), userID)
			deleted = true
			return nil
		},
	}
	svc := newTestEntryService(entries, accountLookup(42))

	require.NoError(t, svc.DeleteEntry(context.Background(), "alice@example.com", 7))
	assert.True(t, deleted)
}

func TestEntryService_DeleteEntry_NotFound(t *testing.T) {
	entries := &mockEntryRepository{
		deleteFn: func(_ context.Context, _, _ int64) error {
			return store.ErrEntryNotFound
		},
	}
	svc := newTestEntryService(entries, accountLookup(42))

	err := svc.DeleteEntry(context.Background(), "alice@example.com", 404)

	require.ErrorIs(t, err, store.ErrEntryNotFound)
}
