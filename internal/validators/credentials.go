package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-cred-vault/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	// FieldMasterUsername targets the account login identifier (an e-mail).
	FieldMasterUsername = "username"

	// FieldMasterPassword targets the account master password.
	FieldMasterPassword = "password"

	// FieldApplication targets the application name of a vault entry.
	FieldApplication = "application"

	// FieldApplicationUsername targets the per-application login name.
	FieldApplicationUsername = "application_username"

	// FieldApplicationPassword targets the per-application password.
	FieldApplicationPassword = "application_password"
)

// Bounds for credential fields. Lengths are counted in runes, post-trim
// for the master fields and as-received for the application fields.
const (
	maxMasterUsernameLen      = 80
	minMasterPasswordLen      = 8
	maxMasterPasswordLen      = 255
	maxApplicationNameLen     = 120
	maxApplicationUsernameLen = 80
)

// emailPattern accepts a local part of word characters with at most one
// inner dot or underscore, an @, and a dotted domain.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+[\._]?[a-zA-Z0-9_]*@\w+[\w.-]*\.\w+$`)

// Injection-risk markers for fields that are rendered back to users.
// The bare-tag pattern is deliberately broad: it also trips on harmless
// bracketed text like "1 < 2 > 0", and that trade-off is accepted — a
// rejected rename is recoverable, a stored-XSS payload is not.
var (
	htmlTagPattern        = regexp.MustCompile(`<[^>]*>`)
	injectionRiskPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`), // event handlers like onclick=, onload=
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)</script`),
		regexp.MustCompile(`(?i)<iframe`),
		regexp.MustCompile(`(?i)<object`),
		regexp.MustCompile(`(?i)<embed`),
	}
)

// CredentialValidator implements the Validator interface for the two
// credential-bearing domain models: User (master credentials) and Entry
// (per-application credentials).
//
// It supports both value and pointer receivers for each model type and
// allows optional field-level scoping via variadic field name arguments.
type CredentialValidator struct {
}

// NewCredentialValidator constructs a new CredentialValidator
// and returns it as the Validator interface.
func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.User / *models.User
//   - models.Entry / *models.Entry
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// all credential fields of the model are validated.
func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.Entry:
		return v.validateEntry(ctx, value, fields...)
	case *models.Entry:
		return v.validateEntry(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateUser validates master credentials.
//
// Default validated fields (when none specified): username, password.
//
// The master username must be 1-80 runes after trimming and shaped like an
// e-mail address; the master password must be 8-255 runes after trimming.
//
// Returns the first encountered validation error or nil.
func (v *CredentialValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMasterUsername, FieldMasterPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldMasterUsername:
			if !isValidMasterUsername(user.Username) {
				return ErrInvalidMasterUsername
			}
		case FieldMasterPassword:
			if !isValidMasterPassword(user.Password) {
				return ErrInvalidMasterPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateEntry validates the credential fields of a vault entry.
//
// Default validated fields (when none specified):
// application, application_username, application_password.
//
// All three fields are rendered back to users, so each is additionally
// screened for injection-risk markers; a hit yields the field's sentinel
// wrapping ErrInjectionRisk.
//
// Returns the first encountered validation error or nil.
func (v *CredentialValidator) validateEntry(_ context.Context, entry models.Entry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldApplication, FieldApplicationUsername, FieldApplicationPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldApplication:
			if runeLen(entry.Application) < 1 || runeLen(entry.Application) > maxApplicationNameLen {
				return ErrInvalidApplicationName
			}
			if containsInjectionRisk(entry.Application) {
				return fmt.Errorf("%w: %w", ErrInvalidApplicationName, ErrInjectionRisk)
			}
		case FieldApplicationUsername:
			if runeLen(entry.ApplicationUsername) < 1 || runeLen(entry.ApplicationUsername) > maxApplicationUsernameLen {
				return ErrInvalidApplicationUsername
			}
			if containsInjectionRisk(entry.ApplicationUsername) {
				return fmt.Errorf("%w: %w", ErrInvalidApplicationUsername, ErrInjectionRisk)
			}
		case FieldApplicationPassword:
			if !isValidMasterPassword(entry.Password) {
				return ErrInvalidApplicationPassword
			}
			if containsInjectionRisk(entry.Password) {
				return fmt.Errorf("%w: %w", ErrInvalidApplicationPassword, ErrInjectionRisk)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// CleanInput stringifies the input and removes leading and trailing
// whitespace. It performs no other rewriting: inputs that fail validation
// are rejected, never sanitized into something acceptable.
func CleanInput(userInput any) string {
	if s, ok := userInput.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(userInput))
}

func isValidMasterUsername(username string) bool {
	username = strings.TrimSpace(username)
	if n := runeLen(username); n < 1 || n > maxMasterUsernameLen {
		return false
	}
	return emailPattern.MatchString(username)
}

func isValidMasterPassword(password string) bool {
	password = strings.TrimSpace(password)
	n := runeLen(password)
	return n >= minMasterPasswordLen && n <= maxMasterPasswordLen
}

func containsInjectionRisk(userInput string) bool {
	if htmlTagPattern.MatchString(userInput) {
		return true
	}
	for _, pattern := range injectionRiskPatterns {
		if pattern.MatchString(userInput) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return len([]rune(s))
}
