package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// structValidator plugs go-playground/validator into echo's Context.Validate.
// Field names in errors are the JSON names.
type structValidator struct {
	validate *validator.Validate
}

func newStructValidator() *structValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &structValidator{validate: v}
}

func (v *structValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
