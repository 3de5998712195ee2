package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/operatorcontext"
	"github.com/urbanserve/backoffice/internal/pkg/provisioning"
)

// PartnerController handles partner provisioning HTTP requests
type PartnerController struct {
	provisioning *provisioning.Service
	partners     repository.PartnerRepository
}

// NewPartnerController creates a new partner controller
func NewPartnerController(svc *provisioning.Service, partners repository.PartnerRepository) *PartnerController {
	return &PartnerController{provisioning: svc, partners: partners}
}

// HandleProvision creates a partner account from the admin request
func (pc *PartnerController) HandleProvision(c *fiber.Ctx) error {
	var req provisioning.ProvisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}

	actor := operatorcontext.GetOperatorName(c)
	partner, err := pc.provisioning.Provision(req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(partner)
}

// HandleGet returns a single partner by UUID
func (pc *PartnerController) HandleGet(c *fiber.Ctx) error {
	partner, err := pc.provisioning.GetByUUID(c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(partner)
}

// HandleList returns partners with pagination
func (pc *PartnerController) HandleList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)

	total, err := pc.partners.Count()
	if err != nil {
		return respondError(c, err)
	}
	partners, err := pc.partners.List(offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items":       partners,
		"total_count": total,
		"page_size":   limit,
	})
}

// HandleSetStatus toggles a partner between active and inactive
func (pc *PartnerController) HandleSetStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}

	partner, err := pc.provisioning.SetStatus(c.Params("uuid"), body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(partner)
}
