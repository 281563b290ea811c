package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the fields that failed validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON encodes payload into a pooled buffer before writing headers,
// so an encoding failure still produces a clean 500.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	log := logger.FromContext(r.Context())

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		log.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error(LogMsgWriteFailed, "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, ErrorResponse{Error: message})
}

// mapServiceErrorToUserMessage maps domain errors to a status and a message
// safe to show the caller. An unknown user is a bad trade request (400);
// read endpoints turn it into 404 themselves.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrTransactionFailed):
		return http.StatusInternalServerError, ErrMsgTransactionFailed
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughGoldError
	case errors.Is(err, domain.ErrNothingOwned):
		return http.StatusBadRequest, ErrMsgNothingOwnedError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}

// respondServiceError logs err with the operation name and writes the mapped
// response. Refusals log at info, failures at error.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceFailed, "operation", opName, "status", status, "error", err)
	} else {
		log.Info(LogMsgServiceRefused, "operation", opName, "status", status, "error", err)
	}
	respondError(w, r, status, message)
}

// respondReadError is respondServiceError for lookups, where an unknown user
// is 404
func respondReadError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		logger.FromContext(r.Context()).Info(LogMsgServiceRefused, "operation", opName, "status", http.StatusNotFound, "error", err)
		respondError(w, r, http.StatusNotFound, ErrMsgUserNotFoundError)
		return
	}
	respondServiceError(w, r, opName, err)
}
