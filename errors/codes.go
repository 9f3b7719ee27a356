package errors

import "net/http"

// Code is a machine-readable error code crossing service boundaries.
// The set is closed; codes follow the OAuth2 RFC 6749 naming convention.
type Code string

// Request/credential errors (HTTP 400)
const (
	// CodeInvalidRequest indicates malformed or incomplete caller input.
	CodeInvalidRequest Code = "invalid_request"
	// CodeInvalidClient indicates an unknown client_id or a client_secret
	// mismatch. Both collapse into one code on purpose.
	CodeInvalidClient Code = "invalid_client"
	// CodeUnsupportedGrantType indicates a grant_type other than "password".
	CodeUnsupportedGrantType Code = "unsupported_grant_type"
)

// Token errors (HTTP 401)
const (
	// CodeInvalidAccessToken indicates a malformed, unsigned, or
	// claim-incomplete token.
	CodeInvalidAccessToken Code = "invalid_access_token"
	// CodeAccessTokenExpired indicates a structurally valid token past expiry.
	CodeAccessTokenExpired Code = "access_token_expired"
)

// Authorization errors (HTTP 403)
const (
	// CodePermissionDenied indicates a valid token whose scope does not cover
	// the requested resource.
	CodePermissionDenied Code = "permission_denied"
)

// CodeServerError is produced only by the recovery path for failures outside
// the domain taxonomy. Clients do not recognize it and fall back to
// status-based handling.
const CodeServerError Code = "server_error"

var codeStatus = map[Code]int{
	CodeInvalidRequest:       http.StatusBadRequest,
	CodeInvalidClient:        http.StatusBadRequest,
	CodeUnsupportedGrantType: http.StatusBadRequest,
	CodeInvalidAccessToken:   http.StatusUnauthorized,
	CodeAccessTokenExpired:   http.StatusUnauthorized,
	CodePermissionDenied:     http.StatusForbidden,
	CodeServerError:          http.StatusInternalServerError,
}

// StatusForCode returns the HTTP status bound to a code.
// Unknown codes map to 500.
func StatusForCode(code Code) int {
	if s, ok := codeStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// IsKnownCode reports whether code belongs to the closed domain taxonomy.
// CodeServerError is deliberately excluded.
func IsKnownCode(code Code) bool {
	_, ok := codeStatus[code]
	return ok && code != CodeServerError
}
