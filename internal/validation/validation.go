// Package validation contains the logic for validating
// input data before it reaches the repositories.
//
// It uses the `validator` library to enforce rules (like
// required fields or numeric bounds) defined in struct tags
// and turns validation errors into errs.FieldError values the
// caller can understand.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by input types that know how to validate themselves.
//
// Typical pattern:
// - Define an input struct with validator tags (`validate:"required,max=25"`)
// - Implement Validate() error that runs validation.Struct(v)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for rules that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

// newValidator reports fields by their JSON names so field errors match
// what callers send.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct runs the struct-tag rules on v.
func Struct(v any) error {
	return validate.Struct(v)
}

// Check validates payload and returns an InvalidArgument *errs.Error with
// field-level errors if validation fails.
func Check(payload Validatable) error {
	err := payload.Validate()
	if err == nil {
		return nil
	}

	msg, fieldErrors := extractValidationError(err)
	if fieldErrors == nil {
		return errs.ValidationError(err)
	}
	return errs.NewInvalidArgumentError(msg, true, nil, fieldErrors)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", fieldErrors
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// min tag means:
			// - for strings: minimum length
			// - for numbers: minimum value
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// Join combines a struct-tag error and custom errors into one error.
// Custom errors are appended after tag errors. Returns nil if both are empty.
func Join(tagErr error, custom CustomValidationErrors) error {
	if tagErr == nil && len(custom) == 0 {
		return nil
	}
	if tagErr == nil {
		return custom
	}
	if len(custom) == 0 {
		return tagErr
	}
	return errors.Join(tagErr, custom)
}
