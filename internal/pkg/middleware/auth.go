package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/urbanserve/backoffice/internal/pkg/operatorcontext"
)

// OperatorContextMiddleware reads the upstream-verified operator identity
// from the X-Operator header and stores it in locals. The gateway in front
// of this service performs the actual authentication.
func OperatorContextMiddleware(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Get("X-Operator"))
	c.Locals(operatorcontext.KeyOperator, operatorcontext.Operator{
		Name:            name,
		IsAuthenticated: name != "",
	})
	return c.Next()
}

// RequireOperator ensures an operator identity is present and returns JSON
// 401 otherwise. Applied to every mutating route.
func RequireOperator(c *fiber.Ctx) error {
	if !operatorcontext.GetOperator(c).IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "operator identity required",
		})
	}
	return c.Next()
}
