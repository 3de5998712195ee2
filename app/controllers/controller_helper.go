package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/apperr"
)

// respondError maps domain failures to HTTP responses. Every typed failure
// keeps its structure so the admin UI can attribute the problem to a field
// or action; only unexpected errors collapse to a 500.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := apperr.AsValidation(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "validation_error",
			"field":   ve.Field,
			"message": ve.Message,
		})
	}
	if de, ok := apperr.AsDuplicate(err); ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "duplicate",
			"field":   de.Field,
			"message": de.Error(),
		})
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "resource not found",
		})
	}
	if errors.Is(err, apperr.ErrInvalidTransition) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "invalid_transition",
			"message": "the listing state no longer permits this transition",
		})
	}
	if errors.Is(err, apperr.ErrInsufficientBalance) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "insufficient_balance",
			"message": "wallet balance does not cover the requested amount",
		})
	}

	log.Printf("Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal",
		"message": "internal server error",
	})
}

// parsePagination reads page/page_size query params with sane defaults
func parsePagination(c *fiber.Ctx) (offset, limit int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("page_size", strconv.Itoa(repository.DefaultPageSize)))
	if limit < 1 {
		limit = repository.DefaultPageSize
	}
	if limit > repository.MaxPageSize {
		limit = repository.MaxPageSize
	}
	return (page - 1) * limit, limit
}
