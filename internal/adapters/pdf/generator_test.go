package pdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

func TestGenerateRoster(t *testing.T) {
	generated := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	t.Run("Should produce a PDF for an empty roster", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, GenerateRoster(nil, generated, &buf))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})

	t.Run("Should spill long rosters onto more pages", func(t *testing.T) {
		list := make([]domain.Employee, 0, 80)
		for i := range 80 {
			list = append(list, domain.Employee{
				ID:                   domain.EmployeeID(fmt.Sprint(i)),
				PrimerNombre:         "ANA",
				PrimerApellido:       "PEREZ",
				TipoIdentificacion:   domain.TipoCedulaCiudadania,
				NumeroIdentificacion: fmt.Sprint(1000 + i),
				Area:                 domain.AreaOperacion,
				FechaIngreso:         "2024-01-15",
			})
		}
		assert.Equal(t, 1, roster(list[:1], generated).PageCount())
		doc := roster(list, generated)
		require.NoError(t, doc.Error())
		assert.Greater(t, doc.PageCount(), 1)
	})
}

func TestFullName(t *testing.T) {
	otros := "MARIA"
	e := domain.Employee{PrimerNombre: "ANA", OtrosNombres: &otros, PrimerApellido: "PEREZ", SegundoApellido: "GOMEZ"}
	assert.Equal(t, "ANA MARIA PEREZ GOMEZ", fullName(e))
	e.OtrosNombres = nil
	assert.Equal(t, "ANA PEREZ GOMEZ", fullName(e))
}
