package sstsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sevenstents-cloud/sst-mvp/pkg/httpx"
)

// ============================================================================
// API Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeInvalidChallenge   = "invalid_challenge"
	ErrorCodeInvalidCode        = "invalid_code"
	ErrorCodeInsufficientScope  = "insufficient_scope"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeConflict           = "conflict"
	ErrorCodeValidationError    = "validation_error"
	ErrorCodeRateLimitExceeded  = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// ============================================================================
// APIError - Standard error type
// ============================================================================

// APIError represents a standard error response from the SST service.
// It implements the error interface and is used both by the server
// (to write HTTP responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter, includes an invalid parameter value, or is otherwise malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is returned when the email/password pair does not
	// match an account. The same error covers unknown emails so the endpoint
	// does not leak which addresses exist.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrInvalidToken is returned when the access token is missing, invalid,
	// expired or revoked.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid, expired or revoked",
	}

	// ErrInvalidRefresh is returned when the refresh token is unknown, expired
	// or already revoked.
	ErrInvalidRefresh = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the refresh token is unknown, expired or revoked",
	}

	// ErrInvalidChallenge is returned when the two-factor challenge token is
	// unknown or expired.
	ErrInvalidChallenge = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidChallenge,
		Description: "the two-factor challenge is unknown or expired",
	}

	// ErrInvalidCode is returned when a TOTP code does not match.
	ErrInvalidCode = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCode,
		Description: "the verification code is incorrect",
	}

	// ErrInvalidFormBody is returned when the form body cannot be parsed.
	ErrInvalidFormBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid form body",
	}

	// ErrInvalidJSONBody is returned when the JSON body cannot be parsed.
	ErrInvalidJSONBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid json body",
	}

	// ErrInsufficientScope is returned when the access token lacks required scopes.
	ErrInsufficientScope = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientScope,
		Description: "the access token does not have the required scopes",
	}

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrConflict is returned when the request conflicts with existing state,
	// for example a duplicate CNPJ or CPF.
	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "the resource conflicts with existing state",
	}

	// ErrServerError is returned when the service encountered an unexpected
	// condition that prevented it from fulfilling the request.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates a new APIError with the given status code, error code,
// and description. Useful for custom messages while keeping the wire format.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// NewValidationError creates a 422 validation error with a field-specific message.
func NewValidationError(description string) *APIError {
	return &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeValidationError,
		Description: description,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse attempts to parse an HTTP error response into a typed
// *APIError. Returns nil if the response indicates success (2xx status code).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create a generic error from the status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
