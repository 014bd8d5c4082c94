package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// master password at login, so responses cannot be used to probe which
	// accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrEmptyToken              = errors.New("empty token")

	ErrTOTPNotEnrolled = errors.New("account is not enrolled in MFA")
	ErrInvalidTOTPCode = errors.New("invalid one-time code")
)
