package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Message string `validate:"required"`
	Rating  string `validate:"oneof=like dislike"`
}

func newApp(handler fiber.Handler, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	if guard != nil {
		app.Get("/t", guard, handler)
	} else {
		app.Get("/t", handler)
	}
	return app
}

func decode(t *testing.T, app *fiber.App, req *httptestRequest) (int, BaseResponse[any]) {
	t.Helper()
	r := httptest.NewRequest("GET", "/t", nil)
	if req != nil && req.auth != "" {
		r.Header.Set("Authorization", req.auth)
	}
	resp, err := app.Test(r, -1)
	require.NoError(t, err)
	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

type httptestRequest struct {
	auth string
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", ValidateRequest(sampleRequest{Rating: "meh"}), 400, "Message is required; Rating must be one of [like dislike]"},
		{"not found", fmt.Errorf("lookup: %w", NewNotFoundError("Session not found")), 404, "Session not found"},
		{"fiber error", fiber.NewError(fiber.StatusUnprocessableEntity, "bad body"), 422, "bad body"},
		{"internal", errors.New("boom"), 500, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(func(ctx *fiber.Ctx) error { return tt.err }, nil)
			code, body := decode(t, app, nil)
			assert.Equal(t, tt.code, code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.msg, body.Message)
		})
	}
}

func TestNotFoundError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuccessResponse(t *testing.T) {
	res := SuccessResponse("ok", map[string]int{"n": 1})
	assert.True(t, res.Success)
	assert.Equal(t, 200, res.Code)
	assert.Equal(t, 1, res.Data["n"])
}

func TestAdminGuard(t *testing.T) {
	ok := func(ctx *fiber.Ctx) error { return ctx.JSON(SuccessResponse[any]("ok", nil)) }

	t.Run("open without secret", func(t *testing.T) {
		code, _ := decode(t, newApp(ok, AdminGuard("")), nil)
		assert.Equal(t, 200, code)
	})

	secret := "s3cret"
	app := newApp(ok, AdminGuard(secret))

	t.Run("missing token", func(t *testing.T) {
		code, body := decode(t, app, nil)
		assert.Equal(t, 401, code)
		assert.Equal(t, "Missing token", body.Message)
	})

	t.Run("wrong secret", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin"}).SignedString([]byte("other"))
		require.NoError(t, err)
		code, _ := decode(t, app, &httptestRequest{auth: "Bearer " + signed})
		assert.Equal(t, 401, code)
	})

	t.Run("expired", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "admin",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}).SignedString([]byte(secret))
		require.NoError(t, err)
		code, _ := decode(t, app, &httptestRequest{auth: "Bearer " + signed})
		assert.Equal(t, 401, code)
	})

	t.Run("valid", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin"}).SignedString([]byte(secret))
		require.NoError(t, err)
		code, body := decode(t, app, &httptestRequest{auth: "Bearer " + signed})
		assert.Equal(t, 200, code)
		assert.True(t, body.Success)
	})
}
