package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Code is the machine readable reason a field was rejected.
type Code string

const (
	CodeRequired    Code = "REQUIRED"
	CodeTooShort    Code = "TOO_SHORT"
	CodeTooLong     Code = "TOO_LONG"
	CodeWrongLength Code = "WRONG_LENGTH"
	CodeInvalid     Code = "INVALID"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

func toValidationError(fe validator.FieldError) ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return ValidationError{field, CodeRequired, fmt.Sprintf("%s is required", field)}
	case "min":
		return ValidationError{field, CodeTooShort, fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())}
	case "max":
		return ValidationError{field, CodeTooLong, fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())}
	case "len":
		return ValidationError{field, CodeWrongLength, fmt.Sprintf("%s must be exactly %s characters long", field, fe.Param())}
	default:
		return ValidationError{field, CodeInvalid, fmt.Sprintf("%s is invalid", field)}
	}
}

// Validate reports every failed field of i. The bool is true when i is valid.
func (v *Validator) Validate(i any) ([]ValidationError, bool) {
	err := v.validate.Struct(i)
	if err == nil {
		return nil, true
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Code: CodeInvalid, Message: err.Error()}}, false
	}

	errors := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		errors = append(errors, toValidationError(fe))
	}

	return errors, false
}
