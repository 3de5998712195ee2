package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanserve/backoffice/internal/pkg/geo"
)

// GeoController handles pincode resolution requests
type GeoController struct {
	resolver *geo.Resolver
}

// NewGeoController creates a new geo controller
func NewGeoController(resolver *geo.Resolver) *GeoController {
	return &GeoController{resolver: resolver}
}

// HandleResolve maps a pincode to its city, state and valid areas
func (gc *GeoController) HandleResolve(c *fiber.Ctx) error {
	loc, err := gc.resolver.Resolve(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(loc)
}

// HandleReload refreshes the in-memory reference data from the database
func (gc *GeoController) HandleReload(c *fiber.Ctx) error {
	if err := gc.resolver.Reload(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"pincodes": gc.resolver.Size(),
	})
}
