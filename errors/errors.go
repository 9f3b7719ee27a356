// Package errors implements the shared error taxonomy and wire error
// protocol for the chronogate services. Every domain failure carries one of
// a closed set of error codes, each bound to a single HTTP status and to a
// JSON envelope that is the sole failure contract between services.
package errors

import (
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is the machine-readable error code.
	Code Code `json:"code"`
	// Description is a human-readable description, not for programmatic
	// branching.
	Description string `json:"description"`
	// HTTPStatus is the HTTP status bound to the code.
	HTTPStatus int `json:"-"`
	// Details contains additional context (denied resource, offending field).
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Description, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError with the status derived from the code.
func New(code Code, description string) *AppError {
	return &AppError{
		Code:        code,
		Description: description,
		HTTPStatus:  StatusForCode(code),
	}
}

// --- Constructors, one per taxonomy entry ---

// InvalidRequest creates an error for malformed or incomplete caller input.
func InvalidRequest(description string) *AppError {
	return New(CodeInvalidRequest, description)
}

// InvalidClient creates an error for an unknown client_id or a secret
// mismatch. The description is identical for both cases so a caller cannot
// tell which check failed.
func InvalidClient(clientID string) *AppError {
	return New(CodeInvalidClient, fmt.Sprintf(
		"Client with id %s not found or pair client_id and client_secret does not match",
		clientID,
	))
}

// UnsupportedGrantType creates an error for a grant_type other than "password".
func UnsupportedGrantType(grantType string) *AppError {
	err := New(CodeUnsupportedGrantType,
		"Unsupported grant type. Server only supports the password grant type.")
	return err.WithDetail("grant_type", grantType)
}

// InvalidAccessToken creates an error for a malformed, unsigned, or
// claim-incomplete token.
func InvalidAccessToken(description string) *AppError {
	if description == "" {
		description = "Access token is invalid"
	}
	return New(CodeInvalidAccessToken, description)
}

// AccessTokenExpired creates an error for a token past its expiry.
func AccessTokenExpired() *AppError {
	return New(CodeAccessTokenExpired, "Access token has expired")
}

// PermissionDenied creates an error for a resource outside the token scope.
// The denied resource name is kept in Details for diagnostics.
func PermissionDenied(resource string) *AppError {
	err := New(CodePermissionDenied, fmt.Sprintf(
		"Access to resource %s denied, out of the token scope", resource))
	return err.WithDetail("denied_resource", resource)
}

// ServerError creates an error for failures outside the domain taxonomy.
func ServerError(cause error) *AppError {
	return New(CodeServerError, "An unexpected error occurred").WithCause(cause)
}

// DeniedResource returns the resource name recorded by PermissionDenied,
// or "" if the error carries none.
func (e *AppError) DeniedResource() string {
	if v, ok := e.Details["denied_resource"].(string); ok {
		return v
	}
	return ""
}
