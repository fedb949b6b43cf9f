package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
)

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON (o de query string).
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON y valida los tags.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("", "cuerpo inválido")
	}
	return validateStruct(out)
}

// parseQuery decodifica la query string y valida los tags.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.NewValidationError("", "parámetros inválidos")
	}
	return validateStruct(out)
}

// validateStruct devuelve el primer campo inválido como ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.NewValidationError(verrs[0].Field(), validationMessage(verrs[0]))
	}
	return domain.NewValidationError("", err.Error())
}

// validateID valida un id de ruta.
func validateID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", domain.NewValidationError("id", "debe ser un uuid")
	}
	return id, nil
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "obligatorio"
	case "email":
		return "email inválido"
	case "uuid":
		return "debe ser un uuid"
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "min":
		if e.Kind() == reflect.String {
			return "al menos " + e.Param() + " caracteres"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "como máximo " + e.Param() + " caracteres"
		}
		return "debe ser como máximo " + e.Param()
	}
	return "valor inválido"
}
