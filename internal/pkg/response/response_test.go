package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHelpers(t *testing.T) {
	app := fiber.New()
	app.Get("/unauthorized", func(c *fiber.Ctx) error { return Unauthorized(c, "access token required") })
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return ValidationFailed(c, map[string]string{"email": "must be a valid email"})
	})
	app.Get("/conflict", func(c *fiber.Ctx) error { return Conflict(c, "attendance already recorded") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/unauthorized", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/invalid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "must be a valid email", body.Fields["email"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(fiber.HeaderWWWAuthenticate))
}
