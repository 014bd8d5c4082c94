package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTOTPService(users *mockUserRepository, authenticator *mockTotpAuthenticator) TOTPService {
	return NewTOTPService(users, authenticator, logger.Nop())
}

func TestTOTPService_Setup_Success(t *testing.T) {
	var storedSecret string
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			return models.User{UserID: 1, Username: username}, nil
		},
		updateTOTPSecretFn: func(_ context.Context, userID int64, totpSecret string) error {
			assert.Equal(t, int64(1), userID)
			storedSecret = totpSecret
			return nil
		},
	}
	authenticator := &mockTotpAuthenticator{
		generateSecretFn: func() (string, error) {
			return "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", nil
		},
		qrCodePNGFn: func(secret, account string) ([]byte, error) {
			assert.Equal(t, "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", secret)
			assert.Equal(t, "alice@example.com", account)
			return []byte{0x89, 'P', 'N', 'G'}, nil
		},
	}
	svc := newTestTOTPService(users, authenticator)

	png, err := svc.Setup(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
	assert.Equal(t, "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", storedSecret)
}

func TestTOTPService_Setup_UnknownUser(t *testing.T) {
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestTOTPService(users, &mockTotpAuthenticator{})

	_, err := svc.Setup(context.Background(), "ghost@example.com")

	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestTOTPService_Setup_StoreFailureDoesNotRenderQR(t *testing.T) {
	qrRendered := false
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			return models.User{UserID: 1, Username: username}, nil
		},
		updateTOTPSecretFn: func(_ context.Context, _ int64, _ string) error {
			return errors.New("update failed")
		},
	}
	authenticator := &mockTotpAuthenticator{
		qrCodePNGFn: func(_, _ string) ([]byte, error) {
			qrRendered = true
			return nil, nil
		},
	}
	svc := newTestTOTPService(users, authenticator)

	_, err := svc.Setup(context.Background(), "alice@example.com")

	require.Error(t, err)
	assert.False(t, qrRendered)
}

func TestTOTPService_Verify_Success(t *testing.T) {
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			return models.User{UserID: 1, Username: username, TOTPSecret: "SECRET"}, nil
		},
	}
	authenticator := &mockTotpAuthenticator{
		verifyCodeFn: func(secret, code string) (bool, error) {
			assert.Equal(t, "SECRET", secret)
			assert.Equal(t, "123456", code)
			return true, nil
		},
	}
	svc := newTestTOTPService(users, authenticator)

	err := svc.Verify(context.Background(), "alice@example.com", "123456")

	require.NoError(t, err)
}

func TestTOTPService_Verify_WrongCode(t *testing.T) {
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			return models.User{UserID: 1, Username: username, TOTPSecret: "SECRET"}, nil
		},
	}
	authenticator := &mockTotpAuthenticator{
		verifyCodeFn: func(_, _ string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestTOTPService(users, authenticator)

	err := svc.Verify(context.Background(), "alice@example.com", "000000")

	require.ErrorIs(t, err, ErrInvalidTOTPCode)
}

func TestTOTPService_Verify_EmptyCode(t *testing.T) {
	lookedUp := false
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			lookedUp = true
			return models.User{}, nil
		},
	}
	svc := newTestTOTPService(users, &mockTotpAuthenticator{})

	err := svc.Verify(context.Background(), "alice@example.com", "")

	require.ErrorIs(t, err, ErrInvalidTOTPCode)
	assert.False(t, lookedUp)
}

func TestTOTPService_Verify_NotEnrolled(t *testing.T) {
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			return models.User{UserID: 1, Username: username}, nil
		},
	}
	svc := newTestTOTPService(users, &mockTotpAuthenticator{})

	err := svc.Verify(context.Background(), "alice@example.com", "123456")

	require.ErrorIs(t, err, ErrTOTPNotEnrolled)
}

func TestTOTPService_Verify_UnknownUser(t *testing.T) {
	users := &mockUserRepository{
		findByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestTOTPService(users, &mockTotpAuthenticator{})

	err := svc.Verify(context.Background(), "ghost@example.com", "123456")

	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}
