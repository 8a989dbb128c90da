package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laflopet/Employee-onboarding-system/internal/adapters/restapi"
	"github.com/laflopet/Employee-onboarding-system/internal/controller"
	"github.com/laflopet/Employee-onboarding-system/internal/domain"
	"github.com/laflopet/Employee-onboarding-system/internal/ports"
)

func TestControllerAgainstBackend(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t)
	api := restapi.New(srv.URL + "/api/v1")
	yes := ports.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
	c := controller.New(api, yes)

	require.NoError(t, c.LoadAll(ctx))
	assert.Empty(t, c.State().Employees)

	t.Run("Should create through the form and list the new record", func(t *testing.T) {
		c.OpenCreateForm()
		for field, raw := range map[string]string{
			domain.FieldPrimerApellido:       "pérez1",
			domain.FieldSegundoApellido:      "gomez",
			domain.FieldPrimerNombre:         "ana",
			domain.FieldNumeroIdentificacion: "123",
			domain.FieldFechaIngreso:         "2024-01-15",
			domain.FieldArea:                 domain.AreaFinanciera,
		} {
			require.NoError(t, c.UpdateDraftField(field, raw))
		}
		assert.Equal(t, "PREZ", c.State().Draft.PrimerApellido)

		require.NoError(t, c.Submit(ctx))
		s := c.State()
		assert.Equal(t, controller.Browsing, s.View)
		assert.Empty(t, s.LastError)
		assert.Equal(t, "Empleado registrado exitosamente", s.Notice)
		require.Len(t, s.Employees, 1)
		assert.Equal(t, "ana.prez@cidenet.com.co", s.Employees[0].Email)
	})

	t.Run("Should keep the form open with the backend message on rejection", func(t *testing.T) {
		c.OpenCreateForm()
		require.NoError(t, c.UpdateDraftField(domain.FieldPrimerApellido, "RUIZ"))
		require.NoError(t, c.UpdateDraftField(domain.FieldSegundoApellido, "DIAZ"))
		require.NoError(t, c.UpdateDraftField(domain.FieldPrimerNombre, "LUIS"))
		require.NoError(t, c.UpdateDraftField(domain.FieldNumeroIdentificacion, "123"))
		require.NoError(t, c.UpdateDraftField(domain.FieldFechaIngreso, "2024-01-15"))

		require.NoError(t, c.Submit(ctx))
		s := c.State()
		assert.Equal(t, controller.FormOpen, s.View)
		assert.Equal(t, "Ya existe un empleado con este tipo y número de identificación.", s.LastError)
		require.NotNil(t, s.Draft)
		assert.Equal(t, "RUIZ", s.Draft.PrimerApellido)
		require.NoError(t, c.CancelForm())
	})

	t.Run("Should edit an existing record", func(t *testing.T) {
		e := c.State().Employees[0]
		require.NoError(t, c.OpenEditForm(e))
		require.NoError(t, c.UpdateDraftField(domain.FieldArea, domain.AreaCompras))
		require.NoError(t, c.Submit(ctx))
		s := c.State()
		assert.Equal(t, "Empleado actualizado exitosamente", s.Notice)
		require.Len(t, s.Employees, 1)
		assert.Equal(t, domain.AreaCompras, s.Employees[0].Area)
	})

	t.Run("Should record a failed delete and still reload", func(t *testing.T) {
		require.NoError(t, c.RequestDelete(ctx, "9999"))
		s := c.State()
		assert.Equal(t, "No encontrado.", s.LastError)
		assert.Len(t, s.Employees, 1)
		assert.False(t, s.Busy)
	})

	t.Run("Should delete a record", func(t *testing.T) {
		id := c.State().Employees[0].ID
		require.NoError(t, c.RequestDelete(ctx, id))
		s := c.State()
		assert.Empty(t, s.LastError)
		assert.Empty(t, s.Employees)
	})
}
