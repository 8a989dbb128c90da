package templates

import (
	"strconv"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

func emailOr(e domain.Employee) string {
	if e.Email == "" {
		return "No disponible"
	}
	return e.Email
}

func otros(e domain.Employee) string {
	if e.OtrosNombres == nil {
		return ""
	}
	return *e.OtrosNombres
}

// itoa converts an int to a string, used for maxlength attributes.
func itoa(n int) string {
	return strconv.Itoa(n)
}

// FieldView is one input of the employee form.
type FieldView struct {
	Name     string
	Label    string
	Value    string
	Kind     string // "text", "date" or "select"
	MaxLen   int
	Required bool
	Choices  []string
}

var fieldLabels = map[string]string{
	domain.FieldPrimerApellido:       "Primer apellido",
	domain.FieldSegundoApellido:      "Segundo apellido",
	domain.FieldPrimerNombre:         "Primer nombre",
	domain.FieldOtrosNombres:         "Otros nombres",
	domain.FieldPaisEmpleo:           "País del empleo",
	domain.FieldTipoIdentificacion:   "Tipo de identificación",
	domain.FieldNumeroIdentificacion: "Número de identificación",
	domain.FieldFechaIngreso:         "Fecha de ingreso",
	domain.FieldArea:                 "Área",
}

// Field describes the named draft field with its current value.
func Field(name, value string) FieldView {
	f := FieldView{
		Name:     name,
		Label:    fieldLabels[name],
		Value:    value,
		Kind:     "text",
		MaxLen:   domain.MaxLen(name),
		Required: name != domain.FieldOtrosNombres,
	}
	switch name {
	case domain.FieldPaisEmpleo:
		f.Kind, f.Choices = "select", domain.PaisChoices
	case domain.FieldTipoIdentificacion:
		f.Kind, f.Choices = "select", domain.TipoIDChoices
	case domain.FieldArea:
		f.Kind, f.Choices = "select", domain.AreaChoices
	case domain.FieldFechaIngreso:
		f.Kind = "date"
	}
	return f
}

func formFields(d *domain.FormDraft) []FieldView {
	if d == nil {
		return nil
	}
	out := make([]FieldView, 0, len(domain.DraftFields))
	for _, name := range domain.DraftFields {
		v, _ := d.Get(name)
		out = append(out, Field(name, v))
	}
	return out
}
