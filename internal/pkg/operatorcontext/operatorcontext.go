package operatorcontext

import "github.com/gofiber/fiber/v2"

// Key under which the middleware stores the operator context
const KeyOperator = "OPERATOR_CONTEXT"

// Operator is the already-verified admin identity attached to a request.
// Authentication happens upstream; this core only records the identity as
// the actor of lifecycle transitions and provisioning.
type Operator struct {
	Name            string `json:"name"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// GetOperator retrieves the operator context from the fiber context.
// Returns an anonymous context if none is set.
func GetOperator(c *fiber.Ctx) Operator {
	if ctx := c.Locals(KeyOperator); ctx != nil {
		return ctx.(Operator)
	}
	return Operator{IsAuthenticated: false}
}

// GetOperatorName returns the current operator's name, or empty if anonymous
func GetOperatorName(c *fiber.Ctx) string {
	return GetOperator(c).Name
}
