package backend

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

// FieldErrors maps a wire field name to its first validation message.
type FieldErrors map[string]string

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Both only ever fail on an error from the registry being misused.
	_ = v.RegisterValidation("upperalpha", func(fl validator.FieldLevel) bool {
		return onlyRunes(fl.Field().String(), false)
	})
	_ = v.RegisterValidation("upperalphaspace", func(fl validator.FieldLevel) bool {
		return onlyRunes(fl.Field().String(), true)
	})
	return v
}

func onlyRunes(s string, space bool) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && !(space && r == ' ') {
			return false
		}
	}
	return true
}

// validateDraft returns nil or the per-field messages for d, in field order.
func (s *Server) validateDraft(d domain.FormDraft) (FieldErrors, string) {
	err := s.validate.Struct(d)
	if err == nil {
		return nil, ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}, err.Error()
	}
	fields := FieldErrors{}
	first := ""
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		msg := fieldMessage(fe)
		fields[fe.Field()] = msg
		if first == "" {
			first = fe.Field() + ": " + msg
		}
	}
	return fields, first
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "max":
		return fmt.Sprintf("Asegúrese de que este campo no tenga más de %s caracteres.", fe.Param())
	case "upperalpha":
		return "Solo se permiten letras mayúsculas A-Z, sin acentos ni Ñ."
	case "upperalphaspace":
		return "Solo letras mayúsculas A-Z y espacios, sin acentos ni Ñ."
	case "number":
		return "Solo se permiten dígitos."
	case "datetime":
		return "Fecha inválida, use el formato AAAA-MM-DD."
	case "oneof":
		return fmt.Sprintf("%q no es una opción válida.", fe.Value())
	}
	return fmt.Sprintf("Valor inválido (%s).", fe.Tag())
}
