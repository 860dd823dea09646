package serverutils

import "github.com/gofiber/fiber/v2"

// AppError carries an HTTP status code plus a message that is safe to show to
// the client. Anything else stays in the wrapped error and the logs.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func WrapAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message)
}

func NotFound(message string) *AppError {
	return NewAppError(fiber.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return NewAppError(fiber.StatusConflict, message)
}

func TooManyRequests(message string) *AppError {
	return NewAppError(fiber.StatusTooManyRequests, message)
}

func Unauthorized(message string) *AppError {
	return NewAppError(fiber.StatusUnauthorized, message)
}
