// Package response writes JSON bodies and error envelopes.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	apiErrors "github.com/dtroode/gophauth/internal/api/errors"
	"github.com/dtroode/gophauth/internal/logger"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error renders err as an error envelope. Errors that are not an
// *APIError are reported as internal and their cause is only logged.
func Error(w http.ResponseWriter, log *logger.Logger, err error) {
	var apiErr *apiErrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apiErrors.NewErrInternalServerError(err)
	}

	if apiErr.Kind == apiErrors.KindInternal {
		log.Error("request failed", "error", err.Error())
	}

	JSON(w, apiErr.HTTPCode, apiErr.Envelope())
}
