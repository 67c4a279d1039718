package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/service"
)

func TestMapErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err        error
		wantCode   string
		wantStatus int
	}{
		{auth.ErrMissingAuthHeader, "MISSING_AUTH_HEADER", http.StatusUnauthorized},
		{auth.ErrInvalidAuthHeader, "INVALID_AUTH_HEADER", http.StatusUnauthorized},
		{auth.ErrMalformedToken, "MALFORMED_TOKEN", http.StatusUnauthorized},
		{auth.ErrInvalidSignature, "INVALID_SIGNATURE", http.StatusUnauthorized},
		{auth.ErrTokenExpired, "TOKEN_EXPIRED", http.StatusUnauthorized},
		{auth.ErrInsufficientRole, "INSUFFICIENT_ROLE", http.StatusForbidden},
		{auth.ErrTokenSigning, "TOKEN_SIGNING_FAILED", http.StatusInternalServerError},
		{service.ErrWrongCredentials, "WRONG_CREDENTIALS", http.StatusUnauthorized},
		{service.ErrUserAlreadyExists, "USER_ALREADY_EXISTS", http.StatusConflict},
		{service.ErrInvalidRole, "INVALID_ROLE", http.StatusBadRequest},
		{service.ErrTooManyAttempts, "TOO_MANY_ATTEMPTS", http.StatusTooManyRequests},
		{service.ErrDatabase, "DATABASE_ERROR", http.StatusInternalServerError},
		{errors.New("something leaked"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.wantCode, func(t *testing.T) {
			got := MapError(tc.err)
			if got.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tc.wantCode)
			}
			if got.HTTPStatus != tc.wantStatus {
				t.Errorf("status = %d, want %d", got.HTTPStatus, tc.wantStatus)
			}
		})
	}
}

// Wrapped sentinels must keep their mapping.
func TestMapErrorUnwrapsWrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("%w: connection refused", service.ErrDatabase)
	got := MapError(wrapped)
	if got.Code != "DATABASE_ERROR" || got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("got %s/%d, want DATABASE_ERROR/500", got.Code, got.HTTPStatus)
	}
}
