// Package validate parses request bodies and reports struct-tag
// violations with English messages keyed by JSON field name.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: v,
		trans:    trans,
	}
}

// ParseAndValidate decodes the request body into req and validates it.
// An empty body is treated as an empty object.
func (v *Validator) ParseAndValidate(ctx *fiber.Ctx, req any) error {
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Request body is not valid")
		}
	}
	return v.Struct(req)
}

// Struct validates req, returning *FieldsError for tag violations.
func (v *Validator) Struct(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is not valid")
	}
	return NewFieldsError(v.translateError(errs))
}

func (v *Validator) translateError(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field()] = e.Translate(v.trans)
	}
	return fields
}
