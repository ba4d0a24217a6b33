package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"

	"github.com/go-playground/validator/v10"
)

// RequestValidator checks request DTOs against their validate tags and
// reports failures as validation errors naming the JSON field.
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(optionalInt64, models.Optional[int64]{})
	v.RegisterCustomTypeFunc(optionalString, models.Optional[*string]{})
	return &RequestValidator{validator: v}
}

// optionalInt64 and optionalString expose the value of a present, non-null
// patch field to the validator. Absent and null fields validate as empty.
func optionalInt64(field reflect.Value) any {
	if o, ok := field.Interface().(models.Optional[int64]); ok && o.Set && !o.Null {
		return o.Value
	}
	return nil
}

func optionalString(field reflect.Value) any {
	if o, ok := field.Interface().(models.Optional[*string]); ok && o.Set && !o.Null && o.Value != nil {
		return *o.Value
	}
	return nil
}

func (rv *RequestValidator) ValidateStruct(s any) error {
	err := rv.validator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperr.Validation(err.Error())
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		problems = append(problems, describe(fe))
	}
	return apperr.Validation(strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color like #007bff", fe.Field())
	default:
		return fmt.Sprintf("%s failed validation on '%s'", fe.Field(), fe.Tag())
	}
}
