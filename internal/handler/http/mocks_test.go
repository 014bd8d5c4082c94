package http

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/service"
	"github.com/MKhiriev/go-cred-vault/models"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn    func(ctx context.Context, user models.User) (models.User, error)
	loginFn       func(ctx context.Context, user models.User) (models.User, error)
	getAllUsersFn func(ctx context.Context) ([]models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	return m.registerFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return m.getAllUsersFn(ctx)
}

// ─────────────────────────────────────────────
// Mock: service.TOTPService
// ─────────────────────────────────────────────

type mockTOTPService struct {
	setupFn  func(ctx context.Context, username string) ([]byte, error)
	verifyFn func(ctx context.Context, username, code string) error
}

func (m *mockTOTPService) Setup(ctx context.Context, username string) ([]byte, error) {
	return m.setupFn(ctx, username)
}

func (m *mockTOTPService) Verify(ctx context.Context, username, code string) error {
	return m.verifyFn(ctx, username, code)
}

// ─────────────────────────────────────────────
// Mock: service.TokenService
// ─────────────────────────────────────────────

type mockTokenService struct {
	issueFn    func(ctx context.Context, username string) (models.Token, error)
	validateFn func(ctx context.Context, tokenString string) (models.Token, bool)
	revokeFn   func(ctx context.Context, tokenString string) error
}

func (m *mockTokenService) Issue(ctx context.Context, username string) (models.Token, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, username)
	}
	return models.Token{SignedString: "signed.jwt.token", Username: username}, nil
}

func (m *mockTokenService) Validate(ctx context.Context, tokenString string) (models.Token, bool) {
	if m.validateFn != nil {
		return m.validateFn(ctx, tokenString)
	}
	return models.Token{}, false
}

func (m *mockTokenService) Revoke(ctx context.Context, tokenString string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, tokenString)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.EntryService
// ─────────────────────────────────────────────

type mockEntryService struct {
	createFn func(ctx context.Context, username string, entry models.Entry) (models.Entry, error)
	getAllFn func(ctx context.Context, username string) ([]models.Entry, error)
	getFn    func(ctx context.Context, username string, entryID int64) (models.Entry, error)
	updateFn func(ctx context.Context, username string, entry models.Entry) (models.Entry, error)
	deleteFn func(ctx context.Context, username string, entryID int64) error
}

func (m *mockEntryService) CreateEntry(ctx context.Context, username string, entry models.Entry) (models.Entry, error) {
	return m.createFn(ctx, username, entry)
}

func (m *mockEntryService) GetAllEntries(ctx context.Context, username string) ([]models.Entry, error) {
	return m.getAllFn(ctx, username)
}

func (m *mockEntryService) GetEntry(ctx context.Context, username string, entryID int64) (models.Entry, error) {
	return m.getFn(ctx, username, entryID)
}

func (m *mockEntryService) UpdateEntry(ctx context.Context, username string, entry models.Entry) (models.Entry, error) {
	return m.updateFn(ctx, username, entry)
}

func (m *mockEntryService) DeleteEntry(ctx context.Context, username string, entryID int64) error {
	return m.deleteFn(ctx, username, entryID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler whose services default to nil; tests fill
// in only the mocks they exercise.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, logger.Nop())
}
