package crypto

// PasswordHasher owns master-password hashing. It produces and checks
// self-describing argon2id hash strings, so verification never needs
// externally stored parameters.
//
// Scheme of use at login:
//
//	ok := Verify(stored, candidate)          (step 1)
//	if ok && NeedsRehash(stored) {           (step 2)
//	    stored, _ = Hash(candidate)          (opportunistic upgrade)
//	}
type PasswordHasher interface {
	// Hash derives an argon2id digest of password under a fresh random
	// salt and returns it in PHC string format:
	//
	//	$argon2id$v=19$m=<KiB>,t=<iterations>,p=<lanes>$<b64 salt>$<b64 digest>
	Hash(password string) (string, error)

	// Verify reports whether candidate matches the PHC hash string.
	// It never returns an error: a malformed hash, a wrong candidate,
	// and an empty candidate all yield false.
	Verify(hash, candidate string) bool

	// NeedsRehash reports whether hash was produced with parameters that
	// differ from the currently configured ones. Malformed hashes also
	// report true so they are replaced on the next successful login.
	NeedsRehash(hash string) bool
}

// TotpAuthenticator owns the TOTP (RFC 6238) second factor: secret
// generation, provisioning for authenticator apps, and code verification.
type TotpAuthenticator interface {
	// GenerateSecret returns a fresh 32-character base32 secret
	// (160 bits from the OS CSPRNG).
	GenerateSecret() (string, error)

	// ProvisioningURI renders the otpauth:// key URI for the given secret
	// and account name, embedding the configured issuer label.
	// Returns ErrEmptySecret or ErrEmptyAccount on missing arguments.
	ProvisioningURI(secret, account string) (string, error)

	// QRCodePNG renders the provisioning URI as an in-memory PNG QR code
	// suitable for scanning by authenticator apps.
	QRCodePNG(secret, account string) ([]byte, error)

	// VerifyCode checks a 6-digit code against the secret using 30-second
	// steps with one step of clock skew in either direction. Empty secret
	// or code is a caller bug and yields ErrEmptySecret / ErrEmptyCode
	// rather than false.
	VerifyCode(secret, code string) (bool, error)
}
