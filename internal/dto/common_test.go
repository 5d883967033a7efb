package dto

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaging(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		totalPage   int
	}{
		{1, 10, 0, 0},
		{1, 10, 5, 1},
		{1, 10, 10, 1},
		{2, 10, 15, 2},
		{1, 10, 101, 11},
	}
	for _, tc := range cases {
		paging := NewPaging(tc.page, tc.limit, tc.total)
		assert.Equal(t, tc.page, paging.CurrentPage)
		assert.Equal(t, tc.limit, paging.Size)
		assert.Equal(t, tc.totalPage, paging.TotalPage, "total=%d", tc.total)
	}
}

func TestPageParams(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, limit := PageParams(c)
		return c.JSON(fiber.Map{"page": page, "limit": limit})
	})

	cases := []struct {
		query       string
		page, limit int
	}{
		{"", 1, 10},
		{"?page=3&limit=25", 3, 25},
		{"?page=0&limit=-1", 1, 10},
		{"?page=2&limit=500", 2, 10},
		{"?page=abc&limit=xyz", 1, 10},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tc.query, nil))
		require.NoError(t, err)

		var body struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, tc.page, body.Page, tc.query)
		assert.Equal(t, tc.limit, body.Limit, tc.query)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.Validation(apperr.FieldError{Path: "name", Message: "name is required"}), http.StatusBadRequest},
		{apperr.NotFound("Store not found"), http.StatusNotFound},
		{apperr.Unauthorized("missing token"), http.StatusUnauthorized},
		{apperr.Forbidden("not yours"), http.StatusForbidden},
		{apperr.Conflict("store name already in use"), http.StatusConflict},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for i, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return Error(c, tc.err)
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "case %d", i)

		var body ErrorEnvelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		require.NotEmpty(t, body.Errors)
	}
}

// Internal detail must never reach the response body.
func TestErrorHidesInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Error(c, apperr.Internal("failed to save", fmt.Errorf("dsn=postgres://secret")))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var body ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Errors)
	assert.Equal(t, "Internal server error", body.Errors[0].Message)
	assert.NotContains(t, body.Errors[0].Message, "secret")
}
