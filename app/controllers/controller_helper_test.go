package controllers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanserve/backoffice/app/repository"
)

func paginationOf(t *testing.T, query string) (offset, limit int) {
	t.Helper()

	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		offset, limit := parsePagination(c)
		return c.JSON(fiber.Map{"offset": offset, "limit": limit})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/items"+query, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Offset, body.Limit
}

func TestParsePaginationDefaults(t *testing.T) {
	offset, limit := paginationOf(t, "")
	assert.Equal(t, 0, offset)
	assert.Equal(t, repository.DefaultPageSize, limit)
}

func TestParsePaginationOffset(t *testing.T) {
	offset, limit := paginationOf(t, "?page=3&page_size=10")
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)
}

func TestParsePaginationClampsPageSize(t *testing.T) {
	offset, limit := paginationOf(t, "?page=2&page_size=500")
	assert.Equal(t, repository.MaxPageSize, limit)
	assert.Equal(t, repository.MaxPageSize, offset)
}

func TestParsePaginationRejectsBadValues(t *testing.T) {
	tests := []struct {
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"?page=0", 0, repository.DefaultPageSize},
		{"?page=-2", 0, repository.DefaultPageSize},
		{"?page_size=0", 0, repository.DefaultPageSize},
		{"?page_size=-5", 0, repository.DefaultPageSize},
		{"?page=abc&page_size=xyz", 0, repository.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			offset, limit := paginationOf(t, tt.query)
			assert.Equal(t, tt.wantOffset, offset, fmt.Sprintf("offset for %s", tt.query))
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
