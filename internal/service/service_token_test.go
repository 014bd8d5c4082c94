package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(denyList *mockDenyListRepository) TokenService {
	return NewTokenService(denyList, config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "vault-test",
		TokenDuration: time.Hour,
	}, logger.Nop())
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService(&mockDenyListRepository{})

	issued, err := svc.Issue(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	parsed, ok := svc.Validate(context.Background(), issued.SignedString)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", parsed.Username)
}

func TestTokenService_Issue_EmptyUsername(t *testing.T) {
	svc := newTestTokenService(&mockDenyListRepository{})

	_, err := svc.Issue(context.Background(), "")

	require.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestTokenService_Validate_GarbageToken(t *testing.T) {
	svc := newTestTokenService(&mockDenyListRepository{})

	_, ok := svc.Validate(context.Background(), "not.a.token")

	assert.False(t, ok)
}

func TestTokenService_Validate_ExpiredToken(t *testing.T) {
	expired, err := utils.GenerateJWTToken("vault-test", "alice@example.com", -time.Minute, "test-sign-key")
	require.NoError(t, err)

	svc := newTestTokenService(&mockDenyListRepository{})

	_, ok := svc.Validate(context.Background(), expired.SignedString)

	assert.False(t, ok)
}

func TestTokenService_Validate_ForeignIssuer(t *testing.T) {
	foreign, err := utils.GenerateJWTToken("other-service", "alice@example.com", time.Hour, "test-sign-key")
	require.NoError(t, err)

	svc := newTestTokenService(&mockDenyListRepository{})

	_, ok := svc.Validate(context.Background(), foreign.SignedString)

	assert.False(t, ok)
}

func TestTokenService_Validate_WrongKey(t *testing.T) {
	forged, err := utils.GenerateJWTToken("vault-test", "alice@example.com", time.Hour, "attacker-key")
	require.NoError(t, err)

	svc := newTestTokenService(&mockDenyListRepository{})

	_, ok := svc.Validate(context.Background(), forged.SignedString)

	assert.False(t, ok)
}

func TestTokenService_Validate_RevokedToken(t *testing.T) {
	denyList := &mockDenyListRepository{
		containsFn: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestTokenService(denyList)

	issued, err := svc.Issue(context.Background(), "alice@example.com")
	require.NoError(t, err)

	_, ok := svc.Validate(context.Background(), issued.SignedString)

	assert.False(t, ok)
}

func TestTokenService_Validate_DenyListLookupErrorFailsClosed(t *testing.T) {
	denyList := &mockDenyListRepository{
		containsFn: func(_ context.Context, _ string) (bool, error) {
			return false, errors.New("db unreachable")
		},
	}
	svc := newTestTokenService(denyList)

	issued, err := svc.Issue(context.Background(), "alice@example.com")
	require.NoError(t, err)

	_, ok := svc.Validate(context.Background(), issued.SignedString)

	assert.False(t, ok)
}

func TestTokenService_Revoke_Success(t *testing.T) {
	var denied string
	var deniedUntil time.Time
	denyList := &mockDenyListRepository{
		insertFn: func(_ context.Context, token string, expiresAt time.Time) error {
			denied = token
			deniedUntil = expiresAt
			return nil
		},
	}
	svc := newTestTokenService(denyList)

	issued, err := svc.Issue(context.Background(), "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), issued.SignedString))
	assert.Equal(t, issued.SignedString, denied)
	assert.WithinDuration(t, time.Now().Add(time.Hour), deniedUntil, 5*time.Second)
}

func TestTokenService_Revoke_EmptyToken(t *testing.T) {
	svc := newTestTokenService(&mockDenyListRepository{})

	err := svc.Revoke(context.Background(), "")

	require.ErrorIs(t, err, ErrEmptyToken)
}

func TestTokenService_Revoke_GarbageToken(t *testing.T) {
	svc := newTestTokenService(&mockDenyListRepository{})

	err := svc.Revoke(context.Background(), "not.a.token")

	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
