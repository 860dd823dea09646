package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest checks DTO struct tags and converts the first failure into a
// field-level 400 error.
func ValidateRequest(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return NewAppError(fiber.StatusBadRequest,
				fmt.Sprintf("Field '%s' failed validation: %s", first.Field(), first.Tag()))
		}
		return NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}
