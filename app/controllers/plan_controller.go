package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanserve/backoffice/internal/pkg/catalog"
)

// PlanController handles subscription plan catalog requests
type PlanController struct {
	catalog *catalog.Catalog
}

// NewPlanController creates a new plan controller
func NewPlanController(cat *catalog.Catalog) *PlanController {
	return &PlanController{catalog: cat}
}

// HandleListActive returns plans open for new provisioning, cheapest first
func (pc *PlanController) HandleListActive(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": pc.catalog.ListActivePlans(),
	})
}

// HandleReload refreshes the catalog from the database and re-checks the
// price invariant on every plan
func (pc *PlanController) HandleReload(c *fiber.Ctx) error {
	if err := pc.catalog.Reload(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
