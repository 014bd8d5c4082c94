// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/skip2/go-qrcode"
)

// qrCodeSize is the edge length in pixels of rendered QR code images.
const qrCodeSize = 256

// validateOpts fixes the verification parameters: 6-digit codes over
// 30-second steps, accepting one step of clock skew in either direction.
var validateOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// totpAuthenticator is the private implementation of [TotpAuthenticator].
type totpAuthenticator struct {
	// issuer is the service label shown next to the account name in
	// authenticator apps.
	issuer string
}

// NewTotpAuthenticator constructs a [TotpAuthenticator] embedding issuer
// in every provisioning URI it renders.
func NewTotpAuthenticator(issuer string) TotpAuthenticator {
	return &totpAuthenticator{issuer: issuer}
}

// GenerateSecret implements [TotpAuthenticator]. It reads 20 random bytes
// (160 bits) from the OS CSPRNG and encodes them as unpadded base32,
// yielding a 32-character secret. Returns an error if the random read fails.
func (t *totpAuthenticator) GenerateSecret() (string, error) {
	raw := make([]byte, 20)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("error generating TOTP secret: %w", err)
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw), nil
}

// ProvisioningURI implements [TotpAuthenticator]. The URI follows the
// Key URI Format understood by authenticator apps:
//
//	otpauth://totp/<issuer>:<account>?secret=<secret>&issuer=<issuer>
//
// Issuer and account are percent-encoded as URI components, so labels
// like "My Vault" and e-mail account names survive the round trip.
//
// The secret and digit/period parameters are deliberately not appended
// beyond the two shown: authenticator apps fall back to the same defaults
// this service verifies with (SHA1, 6 digits, 30 seconds).
func (t *totpAuthenticator) ProvisioningURI(secret, account string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if account == "" {
		return "", ErrEmptyAccount
	}

	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		uriComponentEscape(t.issuer),
		uriComponentEscape(account),
		secret,
		uriComponentEscape(t.issuer),
	), nil
}

// QRCodePNG implements [TotpAuthenticator]. It renders the provisioning
// URI as a medium-redundancy PNG QR code held entirely in memory.
func (t *totpAuthenticator) QRCodePNG(secret, account string) ([]byte, error) {
	uri, err := t.ProvisioningURI(secret, account)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(uri, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("error rendering QR code: %w", err)
	}

	return png, nil
}

// VerifyCode implements [TotpAuthenticator]. Comparison inside the otp
// library is constant-time per candidate step.
func (t *totpAuthenticator) VerifyCode(secret, code string) (bool, error) {
	if secret == "" {
		return false, ErrEmptySecret
	}
	if code == "" {
		return false, ErrEmptyCode
	}

	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), validateOpts)
	if err != nil {
		// Malformed secret or code shape: treat as a failed check, the
		// caller gets no detail about why.
		return false, nil
	}

	return ok, nil
}

// uriComponentEscape percent-encodes s as a URI component: space becomes
// %20 (not "+"), "@" becomes %40, "+" becomes %2B.
func uriComponentEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
