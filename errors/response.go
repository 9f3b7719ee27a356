package errors

import (
	"encoding/json"
	stderrors "errors"
)

// Envelope is the JSON structure carried by every non-2xx HTTP response.
// It is the sole data contract crossing service boundaries on failure paths.
type Envelope struct {
	Error            Code   `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ToEnvelope converts an AppError to its wire envelope.
func (e *AppError) ToEnvelope() Envelope {
	return Envelope{
		Error:            e.Code,
		ErrorDescription: e.Description,
	}
}

// FromEnvelope rebuilds an AppError from a received envelope.
// Returns nil if the envelope carries no recognized domain code; callers
// then fall back to HTTP-status-based handling.
func FromEnvelope(env Envelope) *AppError {
	if !IsKnownCode(env.Error) {
		return nil
	}
	return New(env.Error, env.ErrorDescription)
}

// DecodeEnvelope parses a response body as an error envelope.
// The second return value is false when the body is not JSON or carries no
// error field.
func DecodeEnvelope(body []byte) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, false
	}
	if env.Error == "" {
		return Envelope{}, false
	}
	return env, true
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
