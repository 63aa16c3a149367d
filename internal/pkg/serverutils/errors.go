package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

var ErrNotFound = &NotFoundError{Message: "not found"}

func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}

// StatusFor maps an error returned by a handler to an HTTP status and message.
func StatusFor(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	var fiberErr *fiber.Error
	var notFound *NotFoundError

	switch {
	case errors.As(err, &validationErrs):
		return fiber.StatusBadRequest, ValidationMessage(validationErrs)
	case errors.As(err, &notFound):
		return fiber.StatusNotFound, notFound.Message
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}

// ErrorHandler renders err in the response envelope. It also serves as the app's
// fiber.Config.ErrorHandler for errors raised outside the middleware chain.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code, message := StatusFor(err)
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return ErrorHandler(ctx, err)
	}
}
