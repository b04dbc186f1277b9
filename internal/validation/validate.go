package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"blogapi/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks payload against its `validate` tags. A failure is returned
// as a VALIDATION_ERROR AppError listing every offending field.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.NewInternalError(err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return models.NewValidationErrorWithCause("Invalid request payload", errors.New(strings.Join(msgs, "; ")))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: field required", fe.Field())
	case "email":
		return fmt.Sprintf("%s: value is not a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s: must not be empty", fe.Field())
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag())
	}
}
