package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/auth"
)

// ProfileHandler serves the role-gated routes. The role guard runs before
// these handlers; they only read the subject it stored.
type ProfileHandler struct{}

// NewProfileHandler returns a new handler instance.
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// User handles GET /user.
func (h *ProfileHandler) User(c *fiber.Ctx) error {
	subject, _ := auth.SubjectFromContext(c)
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Hello User %s", subject),
		"subject": subject,
	})
}

// Admin handles GET /admin.
func (h *ProfileHandler) Admin(c *fiber.Ctx) error {
	subject, _ := auth.SubjectFromContext(c)
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Hello Admin %s", subject),
		"subject": subject,
	})
}
