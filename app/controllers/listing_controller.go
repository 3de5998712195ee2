package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/lifecycle"
	"github.com/urbanserve/backoffice/internal/pkg/operatorcontext"
)

// ListingController handles listing lifecycle HTTP requests
type ListingController struct {
	lifecycle *lifecycle.Service
}

// NewListingController creates a new listing controller
func NewListingController(svc *lifecycle.Service) *ListingController {
	return &ListingController{lifecycle: svc}
}

// HandleCreate creates a new listing in its initial lifecycle state
func (lc *ListingController) HandleCreate(c *fiber.Ctx) error {
	var input lifecycle.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}

	listing, err := lc.lifecycle.Create(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// HandleList returns one page of listings under the composed filter. The
// total count reflects the same filter as the page itself.
func (lc *ListingController) HandleList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	filter := repository.ListingFilter{
		OperationalStatus: c.Query("status"),
		ModerationStatus:  c.Query("moderation_status"),
		Category:          c.Query("category"),
		SubCategory:       c.Query("sub_category"),
		Search:            c.Query("search"),
		IncludeDeleted:    c.QueryBool("include_deleted", false),
		Offset:            offset,
		Limit:             limit,
	}
	if from := c.Query("created_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := c.Query("created_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}

	items, total, err := lc.lifecycle.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items":       items,
		"total_count": total,
		"page_size":   limit,
	})
}

// HandleGet returns a single listing by UUID
func (lc *ListingController) HandleGet(c *fiber.Ctx) error {
	listing, err := lc.lifecycle.Get(c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// HandleApprove approves a pending listing
func (lc *ListingController) HandleApprove(c *fiber.Ctx) error {
	actor := operatorcontext.GetOperatorName(c)
	listing, err := lc.lifecycle.Approve(c.Params("uuid"), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// HandleReject rejects a pending listing; a reason is required
func (lc *ListingController) HandleReject(c *fiber.Ctx) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}

	actor := operatorcontext.GetOperatorName(c)
	listing, err := lc.lifecycle.Reject(c.Params("uuid"), body.Reason, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// HandleActivate makes a listing visible to end customers
func (lc *ListingController) HandleActivate(c *fiber.Ctx) error {
	actor := operatorcontext.GetOperatorName(c)
	listing, err := lc.lifecycle.Activate(c.Params("uuid"), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// HandleDeactivate hides a listing from end customers
func (lc *ListingController) HandleDeactivate(c *fiber.Ctx) error {
	actor := operatorcontext.GetOperatorName(c)
	listing, err := lc.lifecycle.Deactivate(c.Params("uuid"), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// HandleSoftDelete marks a listing deleted; the reason is optional
func (lc *ListingController) HandleSoftDelete(c *fiber.Ctx) error {
	var body struct {
		Reason string `json:"reason"`
	}
	// body is optional for deletes
	_ = c.BodyParser(&body)

	actor := operatorcontext.GetOperatorName(c)
	listing, err := lc.lifecycle.SoftDelete(c.Params("uuid"), body.Reason, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}
