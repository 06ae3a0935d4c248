package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"student-analyzer-be/pkg/state"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "a@b.com", time.Hour)
	require.NoError(t, err)

	email, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)

	_, err = ParseToken("other", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", "a@b.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/me", NewJwtMiddleware("secret"), func(ctx *fiber.Ctx) error {
		return ctx.SendString(UserEmail(ctx))
	})

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, _ := GenerateToken("secret", "a@b.com", time.Hour)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "a@b.com", string(body))
}

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Email: "a@b.com", Password: "abc123"}))

	err := ValidateRequest(sampleRequest{Email: "nope", Password: "x"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(err))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
		{"gate", fmt.Errorf("open: %w", state.ErrAnalysisNotCompleted), fiber.StatusConflict},
		{"unknown view", state.ErrInvalidViewTransition, fiber.StatusBadRequest},
		{"upstream", fmt.Errorf("%w: boom", ErrUpstream), fiber.StatusBadGateway},
		{"unauthorized", ErrUnauthorized, fiber.StatusUnauthorized},
		{"plain", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestErrorHandlerMiddleware_WritesEnvelope(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/fail", func(ctx *fiber.Ctx) error {
		return state.ErrAnalysisNotCompleted
	})
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("fine", map[string]int{"n": 1}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body Response[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, fiber.StatusConflict, body.Code)

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWrap_KeepsMessageAndKind(t *testing.T) {
	cause := errors.New("Passwords do not match")
	err := Wrap(ErrBadRequest, cause)

	assert.Equal(t, "Passwords do not match", err.Error())
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(err))
	assert.Nil(t, Wrap(ErrBadRequest, nil))
}
