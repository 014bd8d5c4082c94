package models

// RegisterResponse is the body returned by a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// LoginResponse is the body returned by a successful password check.
// MFARequired tells the client whether a second factor is still needed
// before a session token is issued.
type LoginResponse struct {
	Message     string `json:"message"`
	UserID      int64  `json:"user_id"`
	MFARequired bool   `json:"mfa_required"`
}

// TOTPVerifyResponse is the body returned when a TOTP code is accepted
// and a session token is issued.
type TOTPVerifyResponse struct {
	Message string `json:"message"`
	JWT     string `json:"jwt"`
}

// MessageResponse is a generic single-message body used by logout and
// other endpoints that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserListItem is one row of the account listing endpoint.
type UserListItem struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
