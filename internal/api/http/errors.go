package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/service"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// MapError translates every failure the pipeline can produce into a
// DomainError with a stable code and status. Auth failures keep their
// specific kind; anything unrecognized becomes an opaque 500. Response
// messages never say why a signature check failed.
func MapError(err error) *apperrors.DomainError {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, auth.ErrMissingAuthHeader):
		return apperrors.NewDomainError("MISSING_AUTH_HEADER", "missing authorization header", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrInvalidAuthHeader):
		return apperrors.NewDomainError("INVALID_AUTH_HEADER", "invalid authorization header", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrMalformedToken):
		return apperrors.NewDomainError("MALFORMED_TOKEN", "invalid token", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrInvalidSignature):
		return apperrors.NewDomainError("INVALID_SIGNATURE", "invalid token", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrTokenExpired):
		return apperrors.NewDomainError("TOKEN_EXPIRED", "token expired", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrInsufficientRole):
		return apperrors.NewDomainError("INSUFFICIENT_ROLE", "no permission", http.StatusForbidden, nil)
	case errors.Is(err, auth.ErrTokenSigning):
		return apperrors.NewDomainError("TOKEN_SIGNING_FAILED", "internal server error", http.StatusInternalServerError, nil)
	case errors.Is(err, service.ErrWrongCredentials):
		return apperrors.NewDomainError("WRONG_CREDENTIALS", "wrong credentials", http.StatusUnauthorized, nil)
	case errors.Is(err, service.ErrUserAlreadyExists):
		return apperrors.NewDomainError("USER_ALREADY_EXISTS", "user already exists", http.StatusConflict, nil)
	case errors.Is(err, service.ErrInvalidRole):
		return apperrors.NewDomainError("INVALID_ROLE", "invalid role", http.StatusBadRequest, nil)
	case errors.Is(err, service.ErrTooManyAttempts):
		return apperrors.NewDomainError("TOO_MANY_ATTEMPTS", "too many login attempts", http.StatusTooManyRequests, nil)
	case errors.Is(err, service.ErrDatabase):
		return apperrors.NewDomainError("DATABASE_ERROR", "internal server error", http.StatusInternalServerError, nil)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.NewDomainError(statusCode(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
	}

	return apperrors.ToDomainError(err)
}

func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
