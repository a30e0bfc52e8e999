package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/meeting-notes-team/meeting-notes/errors"
)

// CustomValidator implements echo.Validator using go-playground/validator.
// Validation failures come back as AppError so handlers render a 400 with
// the offending fields instead of the validator's internal message.
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.ErrInvalidArgument(err.Error())
	}

	appErr := apperrors.ErrInvalidArgument("Request validation failed")
	for _, fe := range fieldErrs {
		appErr = appErr.WithDetail(strings.ToLower(fe.Field()), describeRule(fe))
	}
	return appErr
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
