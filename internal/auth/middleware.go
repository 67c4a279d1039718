package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/domain"
)

const subjectKey = "auth_subject"

// bearerScheme is matched case-sensitively with a single space separator.
const bearerScheme = "Bearer"

// RequireRole guards a route behind bearer-token authentication and an exact
// role match. Admin tokens do not implicitly pass a User gate; there is no
// role hierarchy. On success the token subject is stored in request locals
// for the downstream handler.
func RequireRole(tokens *TokenManager, required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingAuthHeader
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || scheme != bearerScheme || token == "" || strings.ContainsRune(token, ' ') {
			return ErrInvalidAuthHeader
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return err
		}

		if claims.Role != required {
			return ErrInsufficientRole
		}

		c.Locals(subjectKey, claims.Subject)
		return c.Next()
	}
}

// SubjectFromContext returns the authenticated subject stored by RequireRole.
func SubjectFromContext(c *fiber.Ctx) (string, bool) {
	subject, ok := c.Locals(subjectKey).(string)
	return subject, ok && subject != ""
}
