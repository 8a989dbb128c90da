// Package pdf renders the employee roster as a printable PDF. The table
// header repeats on every page and each page carries a page counter.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

type column struct {
	title string
	width float64 // share of the content width
	align string
	value func(domain.Employee) string
}

var columns = []column{
	{"Nombre", 0.27, "L", fullName},
	{"Identificación", 0.22, "L", func(e domain.Employee) string {
		return e.TipoIdentificacion + " " + e.NumeroIdentificacion
	}},
	{"Email", 0.24, "L", func(e domain.Employee) string {
		if e.Email == "" {
			return "No disponible"
		}
		return e.Email
	}},
	{"Área", 0.15, "L", func(e domain.Employee) string { return e.Area }},
	{"Ingreso", 0.12, "C", func(e domain.Employee) string { return domain.FechaIngresoDisplay(e.FechaIngreso) }},
}

// GenerateRoster writes the employees, in the order given, to w. generated is
// printed in the page footer.
func GenerateRoster(employees []domain.Employee, generated time.Time, w io.Writer) error {
	return roster(employees, generated).Output(w)
}

func roster(employees []domain.Employee, generated time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AliasNbPages("{nb}")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(30, 30, 30)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW*0.7, 9, tr("REGISTRO DE EMPLEADOS"), "", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.3, 9, fmt.Sprintf("%d empleado(s)", len(employees)), "", 1, "R", true, 0, "")
		pdf.Ln(3)

		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 8.5)
		for i, c := range columns {
			ln := 0
			if i == len(columns)-1 {
				ln = 1
			}
			pdf.CellFormat(contentW*c.width, 7, tr(c.title), "1", ln, "L", true, 0, "")
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 7.5)
		pdf.SetTextColor(130, 130, 130)
		pdf.CellFormat(contentW/2, 5, "Generado "+generated.Format("02/01/2006 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 5, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 8.5)
	if len(employees) == 0 {
		pdf.CellFormat(contentW, 8, "No hay empleados registrados.", "1", 1, "C", false, 0, "")
	}
	for i, e := range employees {
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, c := range columns {
			ln := 0
			if j == len(columns)-1 {
				ln = 1
			}
			pdf.CellFormat(contentW*c.width, 6.5, tr(c.value(e)), "1", ln, c.align, true, 0, "")
		}
	}
	return pdf
}

func fullName(e domain.Employee) string {
	name := e.PrimerNombre
	if e.OtrosNombres != nil && *e.OtrosNombres != "" {
		name += " " + *e.OtrosNombres
	}
	name += " " + e.PrimerApellido
	if e.SegundoApellido != "" {
		name += " " + e.SegundoApellido
	}
	return name
}
