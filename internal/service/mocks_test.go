package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cred-vault/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn             func(ctx context.Context, user models.User) (models.User, error)
	findByUsernameFn     func(ctx context.Context, username string) (models.User, error)
	getAllFn             func(ctx context.Context) ([]models.User, error)
	updatePasswordHashFn func(ctx context.Context, userID int64, passwordHash string) error
	updateTOTPSecretFn   func(ctx context.Context, userID int64, totpSecret string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	if m.updatePasswordHashFn != nil {
		return m.updatePasswordHashFn(ctx, userID, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) UpdateTOTPSecret(ctx context.Context, userID int64, totpSecret string) error {
	if m.updateTOTPSecretFn != nil {
		return m.updateTOTPSecretFn(ctx, userID, totpSecret)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.EntryRepository
// ─────────────────────────────────────────────

type mockEntryRepository struct {
	saveFn   func(ctx context.Context, entry models.Entry) (models.Entry, error)
	getAllFn func(ctx context.Context, userID int64) ([]models.Entry, error)
	getFn    func(ctx context.Context, entryID, userID int64) (models.Entry, error)
	updateFn func(ctx context.Context, entry models.Entry) (models.Entry, error)
	deleteFn func(ctx context.Context, entryID, userID int64) error
}

func (m *mockEntryRepository) SaveEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, entry)
	}
	return entry, nil
}

func (m *mockEntryRepository) GetAllEntries(ctx context.Context, userID int64) ([]models.Entry, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockEntryRepository) GetEntry(ctx context.Context, entryID, userID int64) (models.Entry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, entryID, userID)
	}
	return models.Entry{}, nil
}

func (m *mockEntryRepository) UpdateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, entry)
	}
	return entry, nil
}

func (m *mockEntryRepository) DeleteEntry(ctx context.Context, entryID, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, entryID, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.DenyListRepository
// ─────────────────────────────────────────────

type mockDenyListRepository struct {
	insertFn        func(ctx context.Context, token string, expiresAt time.Time) error
	containsFn      func(ctx context.Context, token string) (bool, error)
	deleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockDenyListRepository) Insert(ctx context.Context, token string, expiresAt time.Time) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, token, expiresAt)
	}
	return nil
}

func (m *mockDenyListRepository) Contains(ctx context.Context, token string) (bool, error) {
	if m.containsFn != nil {
		return m.containsFn(ctx, token)
	}
	return false, nil
}

func (m *mockDenyListRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: crypto.TotpAuthenticator
// ─────────────────────────────────────────────

type mockTotpAuthenticator struct {
	generateSecretFn  func() (string, error)
	provisioningURIFn func(secret, account string) (string, error)
	qrCodePNGFn       func(secret, account string) ([]byte, error)
	verifyCodeFn      func(secret, code string) (bool, error)
}

func (m *mockTotpAuthenticator) GenerateSecret() (string, error) {
	if m.generateSecretFn != nil {
		return m.generateSecretFn()
	}
	return "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP", nil
}

func (m *mockTotpAuthenticator) ProvisioningURI(secret, account string) (string, error) {
	if m.provisioningURIFn != nil {
		return m.provisioningURIFn(secret, account)
	}
	return "otpauth://totp/test:" + account + "?secret=" + secret + "&issuer=test", nil
}

func (m *mockTotpAuthenticator) QRCodePNG(secret, account string) ([]byte, error) {
	if m.qrCodePNGFn != nil {
		return m.qrCodePNGFn(secret, account)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (m *mockTotpAuthenticator) VerifyCode(secret, code string) (bool, error) {
	if m.verifyCodeFn != nil {
		return m.verifyCodeFn(secret, code)
	}
	return true, nil
}
