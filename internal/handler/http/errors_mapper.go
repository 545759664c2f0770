package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/service"
	"github.com/MKhiriev/go-req-sync/internal/store"
	"github.com/MKhiriev/go-req-sync/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrNotConfigured:     http.StatusServiceUnavailable,
	service.ErrTransport:         http.StatusBadGateway,
	service.ErrConflict:          http.StatusConflict,
	service.ErrNotFound:          http.StatusNotFound,
	service.ErrSyncDisabled:      http.StatusPreconditionFailed,
	service.ErrInvalidCollection: http.StatusBadRequest,
	service.ErrInvalidFolder:     http.StatusBadRequest,
	service.ErrInvalidRequest:    http.StatusBadRequest,
	service.ErrInvalidEnv:        http.StatusBadRequest,

	store.ErrCollectionNotFound:      http.StatusNotFound,
	store.ErrCollectionAlreadyExists: http.StatusConflict,
	store.ErrEnvironmentNotFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`

	// set for sync conflicts only
	CollectionID string   `json:"collection_id,omitempty"`
	Paths        []string `json:"paths,omitempty"`
}

// writeError logs err and answers with its mapped status. Conflicts carry
// the conflicting paths so the caller can offer a resolution.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Send()

	resp := errorResponse{Error: err.Error()}
	if conflict, ok := service.AsConflict(err); ok {
		resp.CollectionID = conflict.CollectionID
		resp.Paths = conflict.Paths
	}
	utils.WriteJSON(w, resp, status)
}
