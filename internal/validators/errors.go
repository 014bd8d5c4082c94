package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidMasterUsername      = errors.New("invalid master username")
	ErrInvalidMasterPassword      = errors.New("invalid master password")
	ErrInvalidApplicationName     = errors.New("invalid application name")
	ErrInvalidApplicationUsername = errors.New("invalid application username")
	ErrInvalidApplicationPassword = errors.New("invalid application password")

	// ErrInjectionRisk is returned when a display-facing field contains
	// markup or script markers. The input is rejected, never rewritten.
	ErrInjectionRisk = errors.New("input contains injection risk patterns")
)
