package crypto

import (
	"encoding/base32"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret_Shape(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	secret, err := a.GenerateSecret()
	require.NoError(t, err)

	assert.Len(t, secret, 32, "160 bits of unpadded base32 is 32 characters")
	_, err = base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	assert.NoError(t, err, "secret must be valid base32")
}

func TestGenerateSecret_Unique(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	first, err := a.GenerateSecret()
	require.NoError(t, err)
	second, err := a.GenerateSecret()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestProvisioningURI_Exact(t *testing.T) {
	a := NewTotpAuthenticator("Capstone Password Manager")

	uri, err := a.ProvisioningURI("JBSWY3DPEHPK3PXP", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t,
		"otpauth://totp/Capstone%20Password%20Manager:alice%40example.com"+
			"?secret=JBSWY3DPEHPK3PXP&issuer=Capstone%20Password%20Manager",
		uri)
}

func TestProvisioningURI_EscapesPlus(t *testing.T) {
	a := NewTotpAuthenticator("Vault+Plus")

	uri, err := a.ProvisioningURI("JBSWY3DPEHPK3PXP", "a+b@example.com")
	require.NoError(t, err)

	assert.Equal(t,
		"otpauth://totp/Vault%2BPlus:a%2Bb%40example.com"+
			"?secret=JBSWY3DPEHPK3PXP&issuer=Vault%2BPlus",
		uri)
}

func TestProvisioningURI_EmptyArguments(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	_, err := a.ProvisioningURI("", "alice@example.com")
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = a.ProvisioningURI("JBSWY3DPEHPK3PXP", "")
	assert.ErrorIs(t, err, ErrEmptyAccount)
}

func TestQRCodePNG_ReturnsPNG(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	png, err := a.QRCodePNG("JBSWY3DPEHPK3PXP", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestQRCodePNG_EmptyArguments(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	_, err := a.QRCodePNG("", "alice@example.com")
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = a.QRCodePNG("JBSWY3DPEHPK3PXP", "")
	assert.ErrorIs(t, err, ErrEmptyAccount)
}

func TestVerifyCode_AcceptsCurrentCode(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	secret, err := a.GenerateSecret()
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now().UTC())
	require.NoError(t, err)

	ok, err := a.VerifyCode(secret, code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyCode_AcceptsAdjacentStep(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	secret, err := a.GenerateSecret()
	require.NoError(t, err)

	// A code from the previous 30-second step is still inside the skew window.
	code, err := totp.GenerateCode(secret, time.Now().UTC().Add(-30*time.Second))
	require.NoError(t, err)

	ok, err := a.VerifyCode(secret, code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyCode_RejectsSecondStepBack(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	secret, err := a.GenerateSecret()
	require.NoError(t, err)

	// Two 30-second steps back is the first counter outside the ±1 skew
	// window: one step back is accepted, two are not.
	code, err := totp.GenerateCode(secret, time.Now().UTC().Add(-60*time.Second))
	require.NoError(t, err)

	ok, err := a.VerifyCode(secret, code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCode_RejectsStaleCode(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	secret, err := a.GenerateSecret()
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now().UTC().Add(-5*time.Minute))
	require.NoError(t, err)

	ok, err := a.VerifyCode(secret, code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCode_RejectsWrongShape(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	secret, err := a.GenerateSecret()
	require.NoError(t, err)

	ok, err := a.VerifyCode(secret, "12345") // five digits
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCode_EmptyArguments(t *testing.T) {
	a := NewTotpAuthenticator("Vault")

	_, err := a.VerifyCode("", "123456")
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = a.VerifyCode("JBSWY3DPEHPK3PXP", "")
	assert.ErrorIs(t, err, ErrEmptyCode)
}
