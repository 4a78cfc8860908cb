// Package validation valida DTOs con go-playground/validator y traduce los fallos
// a una lista de campos (nombres JSON) que el transporte expone como 422.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/internal/domain"
)

// Error fallo de validación; errors.Is(err, domain.ErrInvalidInput) es true.
type Error struct {
	Fields []dto.FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Rule)
	}
	return fmt.Sprintf("validation failed (%s)", strings.Join(parts, ", "))
}

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// FieldFailed construye un Error para un único campo.
func FieldFailed(field, rule string) *Error {
	return &Error{Fields: []dto.FieldError{{Field: field, Rule: rule}}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	// maxbytes limita bytes y no runas (bcrypt cuenta bytes).
	_ = v.RegisterValidation("maxbytes", maxBytes)
	// decimal.Decimal se valida como número (gt, lt, ...).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// fieldName usa el nombre JSON (o de formulario) en lugar del nombre Go.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct valida s según sus tags `validate`. Devuelve *Error o nil.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &Error{Fields: make([]dto.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, dto.FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
