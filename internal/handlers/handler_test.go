package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laflopet/Employee-onboarding-system/internal/controller"
	"github.com/laflopet/Employee-onboarding-system/internal/domain"
	"github.com/laflopet/Employee-onboarding-system/internal/handlers"
)

// memoryAPI is an in-process backend keyed by sequential ids.
type memoryAPI struct {
	mu      sync.Mutex
	next    int
	records []domain.Employee
	deletes int
}

func (m *memoryAPI) ListEmployees(context.Context) ([]domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Employee(nil), m.records...), nil
}

func (m *memoryAPI) CreateEmployee(_ context.Context, d domain.FormDraft) (domain.MutationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	otros := d.OtrosNombres
	e := domain.Employee{
		ID:                   domain.EmployeeID(strconv.Itoa(m.next)),
		PrimerApellido:       d.PrimerApellido,
		SegundoApellido:      d.SegundoApellido,
		PrimerNombre:         d.PrimerNombre,
		OtrosNombres:         &otros,
		PaisEmpleo:           d.PaisEmpleo,
		TipoIdentificacion:   d.TipoIdentificacion,
		NumeroIdentificacion: d.NumeroIdentificacion,
		FechaIngreso:         d.FechaIngreso,
		Area:                 d.Area,
	}
	m.records = append(m.records, e)
	return domain.MutationResult{Message: "Empleado registrado exitosamente", Data: &e}, nil
}

func (m *memoryAPI) UpdateEmployee(_ context.Context, id domain.EmployeeID, d domain.FormDraft) (domain.MutationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].PrimerApellido = d.PrimerApellido
			m.records[i].Area = d.Area
			return domain.MutationResult{}, nil
		}
	}
	return domain.MutationResult{}, &domain.MutationFailure{Op: "update", Status: 404, Message: "No encontrado."}
}

func (m *memoryAPI) DeleteEmployee(_ context.Context, id domain.EmployeeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return &domain.MutationFailure{Op: "delete", Status: 404, Message: "No encontrado."}
}

func setup(t *testing.T) (*controller.Controller, *memoryAPI, http.Handler) {
	t.Helper()
	api := &memoryAPI{}
	c := controller.New(api, handlers.Confirmer)
	return c, api, handlers.New(c, nil).Routes()
}

func post(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		domain.FieldPrimerApellido:       {"perez"},
		domain.FieldSegundoApellido:      {"gomez"},
		domain.FieldPrimerNombre:         {"ana"},
		domain.FieldOtrosNombres:         {""},
		domain.FieldPaisEmpleo:           {domain.PaisColombia},
		domain.FieldTipoIdentificacion:   {domain.TipoCedulaCiudadania},
		domain.FieldNumeroIdentificacion: {"123"},
		domain.FieldFechaIngreso:         {"2024-01-15"},
		domain.FieldArea:                 {domain.AreaFinanciera},
	}
}

func TestIndex(t *testing.T) {
	_, _, h := setup(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Registro de empleados")
	assert.Contains(t, body, "0 empleado(s)")
	assert.Contains(t, body, "No hay empleados registrados.")
}

func TestCreateFlow(t *testing.T) {
	c, _, h := setup(t)

	rec := post(t, h, "/form/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registrar empleado")
	assert.Equal(t, controller.FormOpen, c.State().View)

	t.Run("Should normalize and clamp a single field", func(t *testing.T) {
		rec := post(t, h, "/form/field", url.Values{
			"field":                     {domain.FieldPrimerApellido},
			domain.FieldPrimerApellido: {"péreź" + strings.Repeat("x", 30)},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		got := c.State().Draft.PrimerApellido
		assert.Equal(t, "PRE"+strings.Repeat("X", 17), got)
		assert.Contains(t, rec.Body.String(), `value="`+got+`"`)
		assert.Contains(t, rec.Body.String(), `maxlength="20"`)
	})

	t.Run("Should clamp after case mapping lengthens the value", func(t *testing.T) {
		rec := post(t, h, "/form/field", url.Values{
			"field":                  {domain.FieldPrimerNombre},
			domain.FieldPrimerNombre: {strings.Repeat("ß", 20)},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, strings.Repeat("SS", 10), c.State().Draft.PrimerNombre)
	})

	t.Run("Should reject unknown fields", func(t *testing.T) {
		rec := post(t, h, "/form/field", url.Values{"field": {"salario"}, "salario": {"1"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Should submit every posted field", func(t *testing.T) {
		rec := post(t, h, "/form/submit", validForm())
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Empleado registrado exitosamente")
		assert.Contains(t, body, "1 empleado(s)")
		assert.Contains(t, body, "15/01/2024")
		assert.Contains(t, body, "No disponible")
		s := c.State()
		assert.Equal(t, controller.Browsing, s.View)
		require.Len(t, s.Employees, 1)
		assert.Equal(t, "PEREZ", s.Employees[0].PrimerApellido)
	})

	t.Run("Should refuse to submit without an open form", func(t *testing.T) {
		rec := post(t, h, "/form/submit", validForm())
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestEditAndCancel(t *testing.T) {
	c, api, h := setup(t)
	_, err := api.CreateEmployee(context.Background(), domain.FormDraft{PrimerApellido: "RUIZ", PrimerNombre: "LUIS", FechaIngreso: "2024-01-10"})
	require.NoError(t, err)
	require.NoError(t, c.LoadAll(context.Background()))

	rec := post(t, h, "/form/edit/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(t, h, "/form/edit/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Editar empleado")
	assert.Contains(t, rec.Body.String(), `value="RUIZ"`)
	assert.True(t, c.State().Editing())

	rec = post(t, h, "/form/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, controller.Browsing, c.State().View)
	assert.NotContains(t, rec.Body.String(), "Editar empleado")

	rec = post(t, h, "/form/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDelete(t *testing.T) {
	c, api, h := setup(t)
	_, err := api.CreateEmployee(context.Background(), domain.FormDraft{PrimerApellido: "RUIZ", PrimerNombre: "LUIS"})
	require.NoError(t, err)
	require.NoError(t, c.LoadAll(context.Background()))

	t.Run("Should do nothing without confirmation", func(t *testing.T) {
		rec := post(t, h, "/employees/1/delete", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, api.deletes)
		assert.Len(t, c.State().Employees, 1)
	})

	t.Run("Should show the backend message for a missing record", func(t *testing.T) {
		rec := post(t, h, "/employees/77/delete", url.Values{"confirm": {"yes"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No encontrado.")
		assert.Len(t, c.State().Employees, 1)
	})

	t.Run("Should delete once confirmed", func(t *testing.T) {
		rec := post(t, h, "/employees/1/delete", url.Values{"confirm": {"yes"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Empleado eliminado exitosamente")
		assert.Empty(t, c.State().Employees)
	})
}

func TestRefreshAndExport(t *testing.T) {
	c, api, h := setup(t)
	_, err := api.CreateEmployee(context.Background(), domain.FormDraft{PrimerApellido: "RUIZ", PrimerNombre: "LUIS"})
	require.NoError(t, err)

	rec := post(t, h, "/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 empleado(s)")
	assert.Len(t, c.State().Employees, 1)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "empleados_")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestConfirmer(t *testing.T) {
	ctx := context.Background()
	ok, err := handlers.Confirmer.Confirm(ctx, controller.DeletePrompt)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = handlers.Confirmer.Confirm(handlers.WithConfirmation(ctx, true), controller.DeletePrompt)
	require.NoError(t, err)
	assert.True(t, ok)
}
