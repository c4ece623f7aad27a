package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired    = "is required"
	ErrNotBlank    = "must not be blank"
	ErrMinLength   = "must contain at least %s item(s)"
	ErrMinValue    = "must be at least %s"
	ErrMaxValue    = "must be at most %s"
	ErrGreaterThan = "must be greater than %s"
	ErrInvalid     = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterTagNameFunc(jsonFieldName)
	validator.RegisterValidation("notblank", validateNotBlank)

	return validator
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "notblank":
		return ErrNotBlank
	case "min":
		if isCollection(err.Kind()) {
			return fmt.Sprintf(ErrMinLength, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max", "lte":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "gte":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "gt":
		return fmt.Sprintf(ErrGreaterThan, err.Param())
	default:
		return ErrInvalid
	}
}

// Message renders the first field error in err as "<field> <message>", or
// returns err's text when it did not come from the validator.
func Message(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	fe := validationErrors[0]

	return fmt.Sprintf("%s %s", fieldPath(fe), ValidationMessage(fe))
}

// fieldPath drops the top-level struct name from the namespace, so
// "CreateMovieRequest.genre[1]" becomes "genre[1]".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}

	return path
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map || kind == reflect.String
}
