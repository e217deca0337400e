// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps a validator instance for echo
type CustomValidator struct {
	validator *validator.Validate
}

// New creates an echo-compatible request validator
func New() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate validates a request struct against its `validate` tags
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
