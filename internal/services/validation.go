package services

import (
	"fmt"
	"reflect"
	"strings"

	"cityinfo-api/internal/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages line up with request bodies.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateModel validates v against its struct tags and returns a
// *errors.ValidationError keyed by JSON field name, or nil.
func ValidateModel(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return fmt.Errorf("validate %T: %w", v, err)
	}

	verr := errors.NewValidationError()
	for _, e := range validatorErrs {
		verr.Add(e.Field(), validationMessage(e))
	}
	return verr
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("you should provide a %s value", e.Field())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}
