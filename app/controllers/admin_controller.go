package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/statistics"
)

// AdminController handles dashboard and category requests using the
// repository pattern
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{repos: repos}
}

// HandleDashboard returns the aggregate statistics for the admin dashboard
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	data, err := statistics.GetDashboard(ac.repos)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// HandleListCategories returns active categories and sub-categories
func (ac *AdminController) HandleListCategories(c *fiber.Ctx) error {
	categories, err := ac.repos.Category.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": categories})
}
