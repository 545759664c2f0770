package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/models"
)

func (h *Handler) listCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.services.CollectionService.ListCollections(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listCollections", err)
		return
	}
	utils.WriteJSON(w, collections, http.StatusOK)
}

func (h *Handler) getCollection(w http.ResponseWriter, r *http.Request) {
	c, err := h.services.CollectionService.GetCollection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.getCollection", err)
		return
	}
	utils.WriteJSON(w, c, http.StatusOK)
}

func (h *Handler) createCollection(w http.ResponseWriter, r *http.Request) {
	var c models.Collection
	if !decodeBody(w, r, "*Handler.createCollection", &c) {
		return
	}

	created, err := h.services.CollectionService.CreateCollection(r.Context(), c)
	if err != nil {
		writeError(w, r, "*Handler.createCollection", err)
		return
	}
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateCollection(w http.ResponseWriter, r *http.Request) {
	var c models.Collection
	if !decodeBody(w, r, "*Handler.updateCollection", &c) {
		return
	}
	c.ID = chi.URLParam(r, "id")

	if err := h.services.CollectionService.UpdateCollection(r.Context(), c); err != nil {
		writeError(w, r, "*Handler.updateCollection", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteCollection(w http.ResponseWriter, r *http.Request) {
	if err := h.services.CollectionService.DeleteCollection(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "*Handler.deleteCollection", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) saveFolder(w http.ResponseWriter, r *http.Request) {
	var f models.Folder
	if !decodeBody(w, r, "*Handler.saveFolder", &f) {
		return
	}
	f.CollectionID = chi.URLParam(r, "id")
	if id := chi.URLParam(r, "folderID"); id != "" {
		f.ID = id
	}

	saved, err := h.services.CollectionService.SaveFolder(r.Context(), f)
	if err != nil {
		writeError(w, r, "*Handler.saveFolder", err)
		return
	}
	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteFolder(w http.ResponseWriter, r *http.Request) {
	err := h.services.CollectionService.DeleteFolder(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "folderID"))
	if err != nil {
		writeError(w, r, "*Handler.deleteFolder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) saveRequest(w http.ResponseWriter, r *http.Request) {
	var req models.Request
	if !decodeBody(w, r, "*Handler.saveRequest", &req) {
		return
	}
	req.CollectionID = chi.URLParam(r, "id")
	if id := chi.URLParam(r, "requestID"); id != "" {
		req.ID = id
	}

	saved, err := h.services.CollectionService.SaveRequest(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.saveRequest", err)
		return
	}
	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteRequest(w http.ResponseWriter, r *http.Request) {
	err := h.services.CollectionService.DeleteRequest(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, r, "*Handler.deleteRequest", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listEnvironments(w http.ResponseWriter, r *http.Request) {
	envs, err := h.services.CollectionService.ListEnvironments(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listEnvironments", err)
		return
	}
	utils.WriteJSON(w, envs, http.StatusOK)
}

func (h *Handler) saveEnvironment(w http.ResponseWriter, r *http.Request) {
	var env models.Environment
	if !decodeBody(w, r, "*Handler.saveEnvironment", &env) {
		return
	}

	saved, err := h.services.CollectionService.SaveEnvironment(r.Context(), env)
	if err != nil {
		writeError(w, r, "*Handler.saveEnvironment", err)
		return
	}
	utils.WriteJSON(w, saved, http.StatusOK)
}

func decodeBody(w http.ResponseWriter, r *http.Request, funcName string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("invalid JSON was passed")
		utils.WriteJSON(w, errorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return false
	}
	return true
}
