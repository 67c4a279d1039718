package auth

import "errors"

// Sentinel errors for every way the guard pipeline can reject a request.
// Each one maps to exactly one HTTP status at the transport edge; callers
// match them with errors.Is.
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header")
	ErrMalformedToken    = errors.New("malformed token")
	ErrInvalidSignature  = errors.New("invalid token signature")
	ErrTokenExpired      = errors.New("token expired")
	ErrInsufficientRole  = errors.New("insufficient role")
	ErrTokenSigning      = errors.New("token signing failed")
)
