package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"storefront/pkg/apperrors"
)

// newValidator reports fields by their JSON names and validates decimals as
// numbers.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// parseBody decodes the JSON body into out and validates it. Failures become
// a 400 carrying message and one entry per rejected field.
func parseBody(c *fiber.Ctx, v *validator.Validate, out any, message string) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.Invalid(message, apperrors.FieldError{
			Field:   "body",
			Tag:     "json",
			Message: "request body must be a JSON object",
		})
	}
	return validateStruct(v, out, message)
}

func validateStruct(v *validator.Validate, out any, message string) error {
	err := v.Struct(out)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.Wrap(apperrors.CodeValidation, err, message)
	}

	fields := make([]apperrors.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperrors.FieldError{
			Field:   fieldPath(e.Namespace()),
			Tag:     e.Tag(),
			Message: fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()),
		})
	}
	return apperrors.Invalid(message, fields...)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
