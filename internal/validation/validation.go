// Package validation envuelve go-playground/validator con los tipos del dominio.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type enum interface {
	Valid() bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// gt/gte/lte sobre montos
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// enum: el tipo decide qué valores acepta
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enum)
		return ok && e.Valid()
	})

	return v
}

// Struct valida s y devuelve el primer error como apperr de validación.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation("Datos inválidos")
	}
	return apperr.Validation(message(verrs[0]))
}

// Body parsea el cuerpo JSON en dst. Un cuerpo ilegible es un 400.
func Body(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido")
	}
	return nil
}

// ParamID lee el parámetro :id de la ruta.
func ParamID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperr.Validation("ID inválido")
	}
	return uint(id), nil
}

// QueryID lee un id opcional del query string; ausente devuelve nil.
func QueryID(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, apperr.Validation(fmt.Sprintf("El parámetro %s no es válido", key))
	}
	id := uint(n)
	return &id, nil
}

func message(e validator.FieldError) string {
	field := fieldName(e)
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio", field)
	case "gt":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("El campo %s no puede estar vacío", field)
		}
		return fmt.Sprintf("El campo %s debe ser mayor a %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("El campo %s debe ser mayor o igual a %s", field, e.Param())
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("El campo %s debe tener al menos %s elemento(s)", field, e.Param())
		}
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", field, e.Param())
	case "max":
		return fmt.Sprintf("El campo %s admite como máximo %s caracteres", field, e.Param())
	case "enum", "oneof":
		return fmt.Sprintf("El valor de %s no es válido: %v", field, e.Value())
	case "datetime":
		return fmt.Sprintf("El campo %s debe tener formato YYYY-MM-DD", field)
	default:
		return fmt.Sprintf("El campo %s no es válido", field)
	}
}

// fieldName quita el nombre del struct raíz: "items[0].cantidad".
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}
