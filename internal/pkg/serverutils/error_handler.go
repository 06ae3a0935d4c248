package serverutils

import (
	"errors"

	"student-analyzer-be/pkg/extract"
	"student-analyzer-be/pkg/render"
	"student-analyzer-be/pkg/state"

	"github.com/gofiber/fiber/v2"
)

// Error kinds services tag their failures with through Wrap
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
	ErrUnavailable  = errors.New("unavailable")
)

// KindError tags err with a kind while keeping err's message
type KindError struct {
	Kind error
	Err  error
}

func (e *KindError) Error() string   { return e.Err.Error() }
func (e *KindError) Unwrap() []error { return []error{e.Kind, e.Err} }

func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return &KindError{Kind: kind, Err: err}
}

// StatusFor maps an error to the HTTP status it is reported with
func StatusFor(err error) int {
	var fe *fiber.Error
	var ve *ValidationError

	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, state.ErrAnalysisNotCompleted), errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, state.ErrInvalidViewTransition),
		errors.Is(err, render.ErrInvalidInput),
		errors.Is(err, extract.ErrUnsupportedType),
		errors.Is(err, extract.ErrNoText),
		errors.Is(err, ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUpstream):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(status int, err error) string {
	switch status {
	case fiber.StatusInternalServerError:
		return "Something went wrong. Please try again."
	case fiber.StatusBadGateway:
		return "Error generating content. Please try again."
	default:
		return err.Error()
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusFor(err)
		return ctx.Status(status).JSON(ErrorResponse(status, messageFor(status, err)))
	}
}
