package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osse101/BrandishShop/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON body into req and validates it.
// On error the response has already been written and the handler should
// return.
//
//	var req BuyRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Buy"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, r, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Info(LogMsgValidationFailed, "action", actionName, "error", err)
		respondJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetQueryParam returns a required query parameter. If it is missing the
// 400 response has already been written and ok is false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (value string, ok bool) {
	value = r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Info(LogMsgMissingQueryParam, "param", paramName)
		respondJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: map[string]string{paramName: "This field is required"},
		})
		return "", false
	}
	return value, true
}
