package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by the client and the development backend.
const (
	CodeValidation        = "VALIDATION_FAILED"
	CodeBadRequest        = "BAD_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeAuthentication    = "AUTHENTICATION_FAILED"
	CodeCredentialStore   = "CREDENTIAL_STORE"
	CodeTransport         = "TRANSPORT"
	CodeTimeout           = "TIMEOUT"
)

// User-facing messages shared across packages.
const (
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgSessionNotSaved    = "No se pudo guardar la sesión"
	MsgSessionExpired     = "Sesión expirada. Inicie sesión nuevamente."
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s no encontrado", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "Error interno del servidor",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewAuthenticationError reports rejected credentials on login.
func NewAuthenticationError(message string, err error) error {
	return &DomainError{
		Code:       CodeAuthentication,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

// NewInvalidTransition names both states of a rejected ticket status change.
func NewInvalidTransition(current, requested string) error {
	return &DomainError{
		Code:       CodeInvalidTransition,
		Message:    fmt.Sprintf("Transición inválida: %s -> %s", current, requested),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"current":   current,
			"requested": requested,
		},
	}
}

// NewCredentialStoreError wraps a persistence failure of the local credential store.
func NewCredentialStoreError(op string, err error) error {
	return &DomainError{
		Code:    CodeCredentialStore,
		Message: "credential store " + op + " failed",
		Details: map[string]any{"operation": op},
		Err:     err,
	}
}

// NewTransportError wraps a request that never produced an HTTP response.
func NewTransportError(method, url string, err error) error {
	return &DomainError{
		Code:    CodeTransport,
		Message: fmt.Sprintf("%s %s failed", method, url),
		Details: map[string]any{"method": method, "url": url},
		Err:     err,
	}
}

// NewTimeoutError wraps a request whose deadline expired.
func NewTimeoutError(method, url string, err error) error {
	return &DomainError{
		Code:       CodeTimeout,
		Message:    fmt.Sprintf("%s %s timed out", method, url),
		HTTPStatus: http.StatusGatewayTimeout,
		Details:    map[string]any{"method": method, "url": url},
		Err:        err,
	}
}

// NewAPIError maps a non-2xx response to a DomainError. A non-empty server
// message is kept in Details["message"]; otherwise the status text is used.
func NewAPIError(status int, message string) error {
	details := map[string]any{}
	if message != "" {
		details["message"] = message
	} else {
		message = http.StatusText(status)
	}
	return &DomainError{
		Code:       CodeForStatus(status),
		Message:    message,
		HTTPStatus: status,
		Details:    details,
	}
}

// ServerMessage returns the message the server put in its error payload, if any.
func ServerMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if msg, ok := domainErr.Details["message"].(string); ok {
			return msg
		}
	}
	return ""
}

// CodeForStatus picks the error code matching an HTTP status.
func CodeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return CodeBadRequest
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusConflict:
		return CodeConflict
	case status == http.StatusUnprocessableEntity:
		return CodeValidation
	case status == http.StatusGatewayTimeout || status == http.StatusRequestTimeout:
		return CodeTimeout
	default:
		return CodeInternal
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err).(*DomainError)
}

// HasCode reports whether err carries a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

func IsUnauthorized(err error) bool      { return HasCode(err, CodeUnauthorized) }
func IsForbidden(err error) bool         { return HasCode(err, CodeForbidden) }
func IsNotFound(err error) bool          { return HasCode(err, CodeNotFound) }
func IsTimeout(err error) bool           { return HasCode(err, CodeTimeout) }
func IsTransport(err error) bool         { return HasCode(err, CodeTransport) }
func IsValidation(err error) bool        { return HasCode(err, CodeValidation) }
func IsInvalidTransition(err error) bool { return HasCode(err, CodeInvalidTransition) }
func IsCredentialStore(err error) bool   { return HasCode(err, CodeCredentialStore) }
func IsAuthentication(err error) bool    { return HasCode(err, CodeAuthentication) }

// MessageOf returns the user-facing message of err, or fallback for non-domain errors.
func MessageOf(err error, fallback string) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return fallback
}
