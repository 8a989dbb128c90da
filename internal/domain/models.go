package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Field names as exchanged with the backend and posted by the form.
const (
	FieldPrimerApellido       = "primer_apellido"
	FieldSegundoApellido      = "segundo_apellido"
	FieldPrimerNombre         = "primer_nombre"
	FieldOtrosNombres         = "otros_nombres"
	FieldPaisEmpleo           = "pais_empleo"
	FieldTipoIdentificacion   = "tipo_identificacion"
	FieldNumeroIdentificacion = "numero_identificacion"
	FieldFechaIngreso         = "fecha_ingreso"
	FieldArea                 = "area"
)

// Choice values. They travel over the wire as these literal strings.
const (
	PaisColombia      = "Colombia"
	PaisEstadosUnidos = "Estados Unidos"

	TipoCedulaCiudadania  = "Cédula de Ciudadanía"
	TipoCedulaExtranjeria = "Cédula de Extranjería"
	TipoPasaporte         = "Pasaporte"
	TipoPermisoEspecial   = "Permiso Especial"

	AreaAdministracion  = "Administración"
	AreaFinanciera      = "Financiera"
	AreaCompras         = "Compras"
	AreaInfraestructura = "Infraestructura"
	AreaOperacion       = "Operación"
	AreaTalentoHumano   = "Talento Humano"
	AreaServiciosVarios = "Servicios Varios"
)

var (
	PaisChoices   = []string{PaisColombia, PaisEstadosUnidos}
	TipoIDChoices = []string{
		TipoCedulaCiudadania, TipoCedulaExtranjeria, TipoPasaporte, TipoPermisoEspecial,
	}
	AreaChoices = []string{
		AreaAdministracion, AreaFinanciera, AreaCompras, AreaInfraestructura,
		AreaOperacion, AreaTalentoHumano, AreaServiciosVarios,
	}
)

// DraftFields lists the editable fields in form order.
var DraftFields = []string{
	FieldPrimerApellido,
	FieldSegundoApellido,
	FieldPrimerNombre,
	FieldOtrosNombres,
	FieldPaisEmpleo,
	FieldTipoIdentificacion,
	FieldNumeroIdentificacion,
	FieldFechaIngreso,
	FieldArea,
}

// MaxLen returns the input length bound for a field, or 0 when unbounded.
func MaxLen(field string) int {
	switch field {
	case FieldPrimerApellido, FieldSegundoApellido, FieldPrimerNombre, FieldNumeroIdentificacion:
		return 20
	case FieldOtrosNombres:
		return 50
	}
	return 0
}

// EmployeeID is the opaque identifier assigned by the backend. The JSON form
// may be a number or a string; both decode to the same textual value.
type EmployeeID string

func (id *EmployeeID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EmployeeID(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("employee id: %w", err)
	}
	*id = EmployeeID(n.String())
	return nil
}

// MarshalJSON writes an all-digit id as a JSON number and anything else as a
// string.
func (id EmployeeID) MarshalJSON() ([]byte, error) {
	if id != "" && digitsOnly(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id EmployeeID) String() string { return string(id) }

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FechaIngresoDisplay converts a yyyy-mm-dd hire date to dd/mm/yyyy.
// Unparseable values are shown as received.
func FechaIngresoDisplay(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

// Employee is a record as the backend reports it.
type Employee struct {
	ID                   EmployeeID `json:"id"`
	PrimerApellido       string     `json:"primer_apellido"`
	SegundoApellido      string     `json:"segundo_apellido"`
	PrimerNombre         string     `json:"primer_nombre"`
	OtrosNombres         *string    `json:"otros_nombres,omitempty"`
	PaisEmpleo           string     `json:"pais_empleo"`
	TipoIdentificacion   string     `json:"tipo_identificacion"`
	NumeroIdentificacion string     `json:"numero_identificacion"`
	FechaIngreso         string     `json:"fecha_ingreso"`
	Area                 string     `json:"area"`

	// Read-only, filled in by the backend.
	Email         string `json:"email,omitempty"`
	Estado        string `json:"estado,omitempty"`
	FechaRegistro string `json:"fecha_registro,omitempty"`
}

// FullName is the short display name used in lists.
func (e Employee) FullName() string {
	return e.PrimerNombre + " " + e.PrimerApellido
}

// FormDraft is the working copy of an employee's editable fields.
type FormDraft struct {
	PrimerApellido       string `json:"primer_apellido" validate:"required,max=20,upperalpha"`
	SegundoApellido      string `json:"segundo_apellido" validate:"required,max=20,upperalpha"`
	PrimerNombre         string `json:"primer_nombre" validate:"required,max=20,upperalpha"`
	OtrosNombres         string `json:"otros_nombres" validate:"max=50,upperalphaspace"`
	PaisEmpleo           string `json:"pais_empleo" validate:"required,oneof='Colombia' 'Estados Unidos'"`
	TipoIdentificacion   string `json:"tipo_identificacion" validate:"required,oneof='Cédula de Ciudadanía' 'Cédula de Extranjería' 'Pasaporte' 'Permiso Especial'"`
	NumeroIdentificacion string `json:"numero_identificacion" validate:"required,max=20,number"`
	FechaIngreso         string `json:"fecha_ingreso" validate:"required,datetime=2006-01-02"`
	Area                 string `json:"area" validate:"required,oneof='Administración' 'Financiera' 'Compras' 'Infraestructura' 'Operación' 'Talento Humano' 'Servicios Varios'"`
}

// DefaultDraft returns the draft a new record starts from.
func DefaultDraft() FormDraft {
	return FormDraft{
		PaisEmpleo:         PaisColombia,
		TipoIdentificacion: TipoCedulaCiudadania,
		Area:               AreaAdministracion,
	}
}

// DraftFrom copies the editable fields of e. A missing OtrosNombres becomes "".
func DraftFrom(e Employee) FormDraft {
	d := FormDraft{
		PrimerApellido:       e.PrimerApellido,
		SegundoApellido:      e.SegundoApellido,
		PrimerNombre:         e.PrimerNombre,
		PaisEmpleo:           e.PaisEmpleo,
		TipoIdentificacion:   e.TipoIdentificacion,
		NumeroIdentificacion: e.NumeroIdentificacion,
		FechaIngreso:         e.FechaIngreso,
		Area:                 e.Area,
	}
	if e.OtrosNombres != nil {
		d.OtrosNombres = *e.OtrosNombres
	}
	return d
}

// Get returns the value of the named field, and false for unknown names.
func (d *FormDraft) Get(field string) (string, bool) {
	p := d.ptr(field)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set stores v in the named field, and reports false for unknown names.
func (d *FormDraft) Set(field, v string) bool {
	p := d.ptr(field)
	if p == nil {
		return false
	}
	*p = v
	return true
}

func (d *FormDraft) ptr(field string) *string {
	switch field {
	case FieldPrimerApellido:
		return &d.PrimerApellido
	case FieldSegundoApellido:
		return &d.SegundoApellido
	case FieldPrimerNombre:
		return &d.PrimerNombre
	case FieldOtrosNombres:
		return &d.OtrosNombres
	case FieldPaisEmpleo:
		return &d.PaisEmpleo
	case FieldTipoIdentificacion:
		return &d.TipoIdentificacion
	case FieldNumeroIdentificacion:
		return &d.NumeroIdentificacion
	case FieldFechaIngreso:
		return &d.FechaIngreso
	case FieldArea:
		return &d.Area
	}
	return nil
}

// MutationResult is the body returned by a successful create or update.
// Raw holds the body verbatim; Data is the stored record when present.
type MutationResult struct {
	Message string          `json:"message,omitempty"`
	Data    *Employee       `json:"data,omitempty"`
	Raw     json.RawMessage `json:"-"`
}
