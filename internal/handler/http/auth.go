package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
	"github.com/MKhiriev/go-cred-vault/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, user)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			log.Err(err).Msg("unexpected error occurred during user registration")
			writeError(w, http.StatusText(status), status)
			return
		}

		log.Err(err).Msg("registration rejected")
		writeError(w, err.Error(), status)
		return
	}

	utils.WriteJSON(w, models.RegisterResponse{
		Message: "user registered successfully",
		UserID:  registeredUser.UserID,
	}, http.StatusCreated)
}

// listUsers is the account directory kept for admin and debug use. Only
// identity fields leave the handler; hashes and secrets stay inside.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.AuthService.GetAllUsers(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during user listing")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	items := make([]models.UserListItem, 0, len(users))
	for _, user := range users {
		items = append(items, models.UserListItem{
			ID:       user.UserID,
			Username: user.Username,
		})
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			log.Err(err).Msg("unexpected error occurred during user login")
			writeError(w, http.StatusText(status), status)
			return
		}

		log.Err(err).Msg("login rejected")
		writeError(w, err.Error(), status)
		return
	}

	// MFA gate: an enrolled account gets no token from the password step.
	// The client must present a one-time code to /api/totp/verify.
	if foundUser.MFAEnabled() {
		utils.WriteJSON(w, models.LoginResponse{
			Message:     "TOTP verification required",
			UserID:      foundUser.UserID,
			MFARequired: true,
		}, http.StatusOK)
		return
	}

	token, err := h.services.TokenService.Issue(ctx, foundUser.Username)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		Message: "login successful",
		UserID:  foundUser.UserID,
	}, http.StatusOK)
}

// logout revokes the exact token the request was authenticated with. The
// auth middleware has already validated it and stored the raw string in the
// context.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tokenString, ok := utils.GetTokenFromContext(ctx)
	if !ok {
		log.Error().Msg("no token found in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.TokenService.Revoke(ctx, tokenString); err != nil {
		log.Err(err).Msg("token revocation failed")
		status := statusFromError(err)
		writeError(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

// writeError renders the uniform JSON error body. Falls back to a bare
// status line if even that cannot be marshalled.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Error: message}, statusCode); err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}
