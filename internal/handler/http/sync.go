package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/service"
	"github.com/MKhiriev/go-req-sync/internal/utils"
)

const (
	keepLocal  = "local"
	keepRemote = "remote"
)

type resolveRequest struct {
	Keep string `json:"keep"`
}

type syncToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

type pingResponse struct {
	Reachable bool `json:"reachable"`
}

func (h *Handler) collectionsStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.services.SyncService.Status(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.collectionsStatus", err)
		return
	}
	utils.WriteJSON(w, statuses, http.StatusOK)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.SyncService.Pull(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.pull", err)
		return
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) pushAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.SyncService.PushAll(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.pushAll", err)
		return
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) pushCollection(w http.ResponseWriter, r *http.Request) {
	opts, ok := pushOptions(w, r)
	if !ok {
		return
	}

	result, err := h.services.SyncService.PushCollection(r.Context(), chi.URLParam(r, "id"), opts)
	if err != nil {
		writeError(w, r, "*Handler.pushCollection", err)
		return
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) pullCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	outcome, err := h.services.SyncService.PullCollection(r.Context(), id)
	if err != nil {
		writeError(w, r, "*Handler.pullCollection", err)
		return
	}
	utils.WriteJSON(w, map[string]any{"collection_id": id, "outcome": outcome}, http.StatusOK)
}

func (h *Handler) pushRequest(w http.ResponseWriter, r *http.Request) {
	opts, ok := pushOptions(w, r)
	if !ok {
		return
	}

	result, err := h.services.SyncService.PushRequest(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "requestID"), opts)
	if err != nil {
		writeError(w, r, "*Handler.pushRequest", err)
		return
	}

	status := http.StatusOK
	if result.Deferred {
		status = http.StatusAccepted
	}
	utils.WriteJSON(w, result, status)
}

// resolveConflict applies the caller's choice after a conflict:
// keep=local overwrites the remote copy, keep=remote discards local edits.
func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Msg("invalid JSON was passed")
		utils.WriteJSON(w, errorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	switch req.Keep {
	case keepLocal:
		opts, ok := pushOptions(w, r)
		if !ok {
			return
		}
		result, err := h.services.SyncService.ForceKeepLocal(ctx, id, opts)
		if err != nil {
			writeError(w, r, "*Handler.resolveConflict", err)
			return
		}
		utils.WriteJSON(w, result, http.StatusOK)

	case keepRemote:
		if err := h.services.SyncService.ForceKeepRemote(ctx, id); err != nil {
			writeError(w, r, "*Handler.resolveConflict", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		utils.WriteJSON(w, errorResponse{Error: `keep must be "local" or "remote"`}, http.StatusBadRequest)
	}
}

func (h *Handler) setSyncEnabled(w http.ResponseWriter, r *http.Request) {
	var req syncToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		logger.FromRequest(r).Warn().Err(err).Str("func", "*Handler.setSyncEnabled").Msg("invalid sync toggle")
		utils.WriteJSON(w, errorResponse{Error: `body must be {"enabled": bool}`}, http.StatusBadRequest)
		return
	}

	if err := h.services.SyncService.SetSyncEnabled(r.Context(), chi.URLParam(r, "id"), *req.Enabled); err != nil {
		writeError(w, r, "*Handler.setSyncEnabled", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeRemoteCollection(w http.ResponseWriter, r *http.Request) {
	if err := h.services.SyncService.RemoveRemoteCollection(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "*Handler.removeRemoteCollection", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pingRemote(w http.ResponseWriter, r *http.Request) {
	ok, err := h.services.SyncService.TestConnection(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.pingRemote", err)
		return
	}
	utils.WriteJSON(w, pingResponse{Reachable: ok}, http.StatusOK)
}

// pushOptions reads the optional sanitize query flag.
func pushOptions(w http.ResponseWriter, r *http.Request) (service.PushOptions, bool) {
	raw := r.URL.Query().Get("sanitize")
	if raw == "" {
		return service.PushOptions{}, true
	}

	sanitize, err := strconv.ParseBool(raw)
	if err != nil {
		utils.WriteJSON(w, errorResponse{Error: "sanitize must be a boolean"}, http.StatusBadRequest)
		return service.PushOptions{}, false
	}
	return service.PushOptions{Sanitize: sanitize}, true
}
