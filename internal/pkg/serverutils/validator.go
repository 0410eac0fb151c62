package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Validate checks validate tags and returns a 422 fiber error naming the
// first failing field.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return fiber.NewError(fiber.StatusUnprocessableEntity, describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": field required"
	case "email":
		return field + ": value is not a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("%s: should have at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s: should have at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: should have at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
}

// Bind parses the body (JSON or form) into v and validates it.
func Bind(ctx *fiber.Ctx, v interface{}) error {
	if err := ctx.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}
	return Validate(v)
}

// BindQuery parses the query string into v and validates it.
func BindQuery(ctx *fiber.Ctx, v interface{}) error {
	if err := ctx.QueryParser(v); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid query parameters")
	}
	return Validate(v)
}
