package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
	"github.com/MKhiriev/go-cred-vault/models"
)

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var entry models.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	saved, err := h.services.EntryService.CreateEntry(ctx, username, entry)
	if err != nil {
		h.respondEntryError(w, r, err, "entry creation failed")
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entries, err := h.services.EntryService.GetAllEntries(ctx, username)
	if err != nil {
		h.respondEntryError(w, r, err, "listing entries failed")
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID, err := entryIDFromURL(r)
	if err != nil {
		writeError(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	entry, err := h.services.EntryService.GetEntry(ctx, username, entryID)
	if err != nil {
		h.respondEntryError(w, r, err, "entry lookup failed")
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID, err := entryIDFromURL(r)
	if err != nil {
		writeError(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	var entry models.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	entry.EntryID = entryID

	updated, err := h.services.EntryService.UpdateEntry(ctx, username, entry)
	if err != nil {
		h.respondEntryError(w, r, err, "entry update failed")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID, err := entryIDFromURL(r)
	if err != nil {
		writeError(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	if err := h.services.EntryService.DeleteEntry(ctx, username, entryID); err != nil {
		h.respondEntryError(w, r, err, "entry deletion failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "entry deleted"}, http.StatusOK)
}

// respondEntryError maps a vault-entry service error to its HTTP status.
// Internal errors are logged with the original cause but leave the handler
// as a bare status line.
func (h *Handler) respondEntryError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg(msg)
		writeError(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Msg(msg)
	writeError(w, err.Error(), status)
}

func entryIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
}
