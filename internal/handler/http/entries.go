package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/utils"
	"github.com/avdeevsm/go-vault-core/models"
)

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Err(errNoUserInContext).Msg("create entry called without authenticated user")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.EntryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.EntryService.CreateEntry(ctx, userID, request)
	if err != nil {
		log.Err(err).Msg("entry creation failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusCreated) //nolint:errcheck // status already committed
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Err(errNoUserInContext).Msg("get entry called without authenticated user")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID := chi.URLParam(r, "id")

	response, err := h.services.EntryService.GetEntry(ctx, userID, entryID)
	if err != nil {
		log.Err(err).Str("entry_id", entryID).Msg("entry fetch failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK) //nolint:errcheck // status already committed
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Err(errNoUserInContext).Msg("list entries called without authenticated user")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	category := models.Category(r.URL.Query().Get("category"))

	responses, err := h.services.EntryService.ListEntries(ctx, userID, category)
	if err != nil {
		log.Err(err).Msg("entry listing failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, responses, http.StatusOK) //nolint:errcheck // status already committed
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Err(errNoUserInContext).Msg("update entry called without authenticated user")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.EntryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// the path is authoritative for the entry identity
	request.ID = chi.URLParam(r, "id")

	response, err := h.services.EntryService.UpdateEntry(ctx, userID, request)
	if err != nil {
		log.Err(err).Str("entry_id", request.ID).Msg("entry update failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK) //nolint:errcheck // status already committed
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Err(errNoUserInContext).Msg("delete entry called without authenticated user")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID := chi.URLParam(r, "id")

	if err := h.services.EntryService.DeleteEntry(ctx, userID, entryID); err != nil {
		log.Err(err).Str("entry_id", entryID).Msg("entry deletion failed")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
