package serverutils

import (
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by controllers into the
// response envelope. Internal error text never leaves the server outside of
// development mode.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), appErr.Err)
			}
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)

		message := "Internal server error"
		if os.Getenv("GO_ENV") == "development" {
			message = err.Error()
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(message))
	}
}
