package http

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// BindAndValidate binds request params into req, applies struct defaults,
// then runs validator tags. Returns a BadRequest AppError on failure.
func BindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return BadRequest(fmt.Sprintf("invalid request: %v", err))
	}
	if err := defaults.Set(req); err != nil {
		return Internal("apply defaults", err)
	}
	if err := validate.Struct(req); err != nil {
		return BadRequest(fmt.Sprintf("validation failed: %v", err))
	}
	return nil
}
