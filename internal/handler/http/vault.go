package http

import (
	"encoding/json"
	"net/http"

	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/utils"
	"github.com/avdeevsm/go-vault-core/models"
)

// writeServiceError maps a service error to its HTTP status. Internal errors
// are masked behind the generic 500 text so storage details never leak to
// clients; everything else surfaces its sentinel message.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Err(errNoUserInContext).Msg("unlock called without authenticated user")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.UnlockService.Unlock(ctx, userID, request)
	if err != nil {
		log.Err(err).Msg("unlock failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK) //nolint:errcheck // status already committed
}

func (h *Handler) lock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Err(errNoUserInContext).Msg("lock called without authenticated user")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.UnlockService.Lock(ctx, userID); err != nil {
		log.Err(err).Msg("lock failed")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) rotate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Err(errNoUserInContext).Msg("rotate called without authenticated user")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.RotateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.RotationService.Rotate(ctx, userID, request)
	if err != nil {
		log.Err(err).Msg("rotation failed")
		writeServiceError(w, err)
		return
	}

	response := models.RotationResponse{
		Rotated:    result.Rotated(),
		Skipped:    result.Skipped(),
		SkippedIDs: result.SkippedIDs,
	}
	utils.WriteJSON(w, response, http.StatusOK) //nolint:errcheck // status already committed
}

func (h *Handler) requestReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	requesterAddr, _ := utils.GetRemoteAddrFromContext(ctx)

	if err := h.services.ResetService.RequestReset(ctx, request, requesterAddr); err != nil {
		log.Err(err).Msg("reset request failed")
		writeServiceError(w, err)
		return
	}

	// 202 regardless of whether the login exists: the response must not
	// reveal account presence
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) confirmReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.ResetService.ConfirmReset(ctx, request)
	if err != nil {
		log.Err(err).Msg("reset confirmation failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK) //nolint:errcheck // status already committed
}
