package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nordicgeeks/storefront/internal/domain"
	"go.uber.org/zap"
)

// errorBody is the wire shape for every failure: a stable machine code in
// "error" and a human message alongside it.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.StorageError(err)
	}

	status := statusForKind(de.Kind)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		// Do not leak storage internals to the client.
		writeJSON(w, status, errorBody{Error: de.Code, Message: "internal server error"})
		return
	}

	writeJSON(w, status, errorBody{Error: de.Code, Message: de.Message})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
