package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/containerd/errdefs"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondAppError maps a service error onto an HTTP status. Classified
// errors carry a safe, descriptive message; anything unclassified is an
// internal failure that gets logged and hidden behind a generic message.
func (h *BaseHandler) RespondAppError(w http.ResponseWriter, err error) {
	switch {
	case errdefs.IsInvalidArgument(err):
		h.RespondError(w, http.StatusBadRequest, errorMessage(err, errdefs.ErrInvalidArgument))
	case errdefs.IsUnauthorized(err):
		h.RespondError(w, http.StatusUnauthorized, errorMessage(err, errdefs.ErrUnauthenticated))
	case errdefs.IsPermissionDenied(err):
		h.RespondError(w, http.StatusForbidden, errorMessage(err, errdefs.ErrPermissionDenied))
	case errdefs.IsNotFound(err):
		h.RespondError(w, http.StatusNotFound, errorMessage(err, errdefs.ErrNotFound))
	case errdefs.IsConflict(err):
		h.RespondError(w, http.StatusConflict, errorMessage(err, errdefs.ErrConflict))
	default:
		h.Logger.Error("unexpected error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// errorMessage strips the sentinel prefix so clients see only the
// descriptive part of the error
func errorMessage(err error, sentinel error) string {
	if msg, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok {
		return msg
	}
	return err.Error()
}
