package dto

import (
	"errors"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding rules used by the request DTOs:
//
//	entrytype  one of sale, repayment, expense (case-insensitive)
//	datestr    a YYYY-MM-DD calendar date
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	if err := v.RegisterValidation("entrytype", validateEntryType); err != nil {
		return err
	}
	return v.RegisterValidation("datestr", validateDateString)
}

func validateEntryType(fl validator.FieldLevel) bool {
	_, err := domain.ParseEntryType(fl.Field().String())
	return err == nil
}

func validateDateString(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

// ValidationErrorDetails maps each failing field to the rule it broke.
// It returns nil when err is not a validation error.
func ValidationErrorDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		details[ve.Field()] = ve.Tag()
	}
	return details
}
