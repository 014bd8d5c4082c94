package crypto

import "errors"

// Programmer-misuse errors: these mark empty required arguments, not
// failed authentication. Authentication failure is the boolean false.
var (
	ErrEmptySecret  = errors.New("TOTP secret is required")
	ErrEmptyCode    = errors.New("TOTP code is required")
	ErrEmptyAccount = errors.New("account name is required")
)
