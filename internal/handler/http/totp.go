package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/service"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
	"github.com/MKhiriev/go-cred-vault/models"
)

// totpRequest is the body of both TOTP endpoints: setup needs only the
// username, verify additionally needs the 6-digit code.
type totpRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// totpSetup enrolls an account into MFA and responds with a PNG QR code of
// the provisioning URI for authenticator apps. Re-running setup replaces
// the previous secret.
func (h *Handler) totpSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req totpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.Username == "" {
		writeError(w, "Username is required", http.StatusBadRequest)
		return
	}

	png, err := h.services.TOTPService.Setup(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("username", req.Username).Msg("TOTP setup for unknown account")
			writeError(w, "username not found", http.StatusNotFound)
			return
		}

		log.Err(err).Msg("unexpected error occurred during TOTP setup")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// totpVerify checks the second factor and, on success, issues the session
// token withheld at the password step.
func (h *Handler) totpVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req totpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Code == "" {
		writeError(w, "Username and code are required", http.StatusBadRequest)
		return
	}

	if err := h.services.TOTPService.Verify(ctx, req.Username, req.Code); err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Warn().Str("username", req.Username).Msg("TOTP verify for unknown account")
			writeError(w, "username not found", http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrTOTPNotEnrolled):
			writeError(w, "TOTP not set up for this user", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrInvalidTOTPCode):
			log.Warn().Str("username", req.Username).Msg("wrong one-time code")
			writeError(w, "Invalid TOTP code", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during TOTP verification")
			writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.TokenService.Issue(ctx, req.Username)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.TOTPVerifyResponse{
		Message: "TOTP verified successfully",
		JWT:     token.SignedString,
	}, http.StatusOK)
}
