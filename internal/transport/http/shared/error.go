package shared

import (
	"errors"
	"net/http"

	"cccd-intake/internal/transport/http/json"
	dErrors "cccd-intake/pkg/domain-errors"
)

// ErrorResponse is the error envelope every endpoint returns. The ok/msg keys
// are part of the client wire contract.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Msg   string `json:"msg,omitempty"`
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and
// the JSON error envelope exactly once, at the edge.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		json.WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), ErrorResponse{
			OK:    false,
			Error: string(domainErr.Code),
			Msg:   domainErr.Message,
		})
		return
	}

	// Fallback for unexpected errors
	json.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		OK:    false,
		Error: string(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
