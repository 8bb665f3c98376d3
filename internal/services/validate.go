package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// ValidateStruct checks s against its validate tags and returns a
// validation error carrying one message per failing field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperrors.Internal(err)
	}

	details := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		details[fe.Field()] = fieldMessage(fe)
	}
	return apperrors.Validation("Validation failed", details)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isText {
			return field + " must be at least " + param + " characters"
		}
		if fe.Kind() == reflect.Slice {
			return field + " must contain at least " + param + " items"
		}
		return field + " must be at least " + param
	case "max":
		if isText {
			return field + " must be at most " + param + " characters"
		}
		return field + " must be at most " + param
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return field + " must be one of: " + param
	case "hexcolor":
		return field + " must be a hex color"
	case "uuid":
		return field + " must be a valid id"
	case "datetime":
		return field + " must be an RFC 3339 timestamp"
	default:
		return field + " is invalid"
	}
}
