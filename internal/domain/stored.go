package domain

import (
	"strconv"
	"time"
)

const (
	EstadoActivo = "Activo"

	// FechaRegistroLayout is how the backend reports registration timestamps.
	FechaRegistroLayout = "02/01/2006 15:04:05"
)

// StoredEmployee is the backend's persisted row.
type StoredEmployee struct {
	ID                   int64     `db:"id"`
	PrimerApellido       string    `db:"primer_apellido"`
	SegundoApellido      string    `db:"segundo_apellido"`
	PrimerNombre         string    `db:"primer_nombre"`
	OtrosNombres         string    `db:"otros_nombres"`
	PaisEmpleo           string    `db:"pais_empleo"`
	TipoIdentificacion   string    `db:"tipo_identificacion"`
	NumeroIdentificacion string    `db:"numero_identificacion"`
	Email                string    `db:"email"`
	FechaIngreso         string    `db:"fecha_ingreso"`
	Area                 string    `db:"area"`
	Estado               string    `db:"estado"`
	FechaRegistro        time.Time `db:"fecha_registro"`
}

// Apply overwrites the editable fields with the draft.
func (s *StoredEmployee) Apply(d FormDraft) {
	s.PrimerApellido = d.PrimerApellido
	s.SegundoApellido = d.SegundoApellido
	s.PrimerNombre = d.PrimerNombre
	s.OtrosNombres = d.OtrosNombres
	s.PaisEmpleo = d.PaisEmpleo
	s.TipoIdentificacion = d.TipoIdentificacion
	s.NumeroIdentificacion = d.NumeroIdentificacion
	s.FechaIngreso = d.FechaIngreso
	s.Area = d.Area
}

// Employee converts the row into its wire form.
func (s StoredEmployee) Employee() Employee {
	otros := s.OtrosNombres
	return Employee{
		ID:                   EmployeeID(strconv.FormatInt(s.ID, 10)),
		PrimerApellido:       s.PrimerApellido,
		SegundoApellido:      s.SegundoApellido,
		PrimerNombre:         s.PrimerNombre,
		OtrosNombres:         &otros,
		PaisEmpleo:           s.PaisEmpleo,
		TipoIdentificacion:   s.TipoIdentificacion,
		NumeroIdentificacion: s.NumeroIdentificacion,
		FechaIngreso:         s.FechaIngreso,
		Area:                 s.Area,
		Email:                s.Email,
		Estado:               s.Estado,
		FechaRegistro:        s.FechaRegistro.Format(FechaRegistroLayout),
	}
}
