package errors

import (
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// APIError is an error that carries everything the transport needs to
// render it to a client. Err holds the underlying cause and is never sent.
type APIError struct {
	Kind     Kind
	HTTPCode int
	Message  string
	Detail   string
	Err      error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Envelope is the JSON body written for every error response.
type Envelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Envelope returns the client-facing body for e.
func (e *APIError) Envelope() Envelope {
	return Envelope{Error: e.Message, Message: e.Detail}
}

// NewErrValidation reports a rejected input field. reason is shown to the client.
func NewErrValidation(reason string) *APIError {
	return &APIError{
		Kind:     KindValidation,
		HTTPCode: http.StatusBadRequest,
		Message:  reason,
	}
}

func NewErrNoData() *APIError {
	return &APIError{
		Kind:     KindValidation,
		HTTPCode: http.StatusBadRequest,
		Message:  "no data provided",
	}
}

func NewErrMissingCredentials() *APIError {
	return &APIError{
		Kind:     KindValidation,
		HTTPCode: http.StatusBadRequest,
		Message:  "username and password are required",
	}
}

func NewErrUsernameTaken(username string) *APIError {
	return &APIError{
		Kind:     KindConflict,
		HTTPCode: http.StatusConflict,
		Message:  "username already exists",
		Err:      fmt.Errorf("username %q is taken", username),
	}
}

// NewErrInvalidCredentials is returned for every failed login, whatever the cause.
func NewErrInvalidCredentials() *APIError {
	return &APIError{
		Kind:     KindAuthentication,
		HTTPCode: http.StatusUnauthorized,
		Message:  "invalid credentials",
	}
}

func NewErrAuthRequired() *APIError {
	return &APIError{
		Kind:     KindAuthorization,
		HTTPCode: http.StatusUnauthorized,
		Message:  "authentication required",
		Detail:   "you must log in to access this resource",
	}
}

func NewErrRouteNotFound() *APIError {
	return &APIError{
		Kind:     KindNotFound,
		HTTPCode: http.StatusNotFound,
		Message:  "route not found",
		Detail:   "the requested endpoint does not exist",
	}
}

func NewErrInternalServerError(err error) *APIError {
	return &APIError{
		Kind:     KindInternal,
		HTTPCode: http.StatusInternalServerError,
		Message:  "internal server error",
		Detail:   "an unexpected error occurred",
		Err:      err,
	}
}
