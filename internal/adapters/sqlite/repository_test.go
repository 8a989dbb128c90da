package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laflopet/Employee-onboarding-system/internal/adapters/sqlite"
	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

func openRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "employees.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func row(numero, email string, registered time.Time) *domain.StoredEmployee {
	return &domain.StoredEmployee{
		PrimerApellido:       "PEREZ",
		SegundoApellido:      "GOMEZ",
		PrimerNombre:         "ANA",
		PaisEmpleo:           domain.PaisColombia,
		TipoIdentificacion:   domain.TipoCedulaCiudadania,
		NumeroIdentificacion: numero,
		Email:                email,
		FechaIngreso:         "2024-01-15",
		Area:                 domain.AreaFinanciera,
		FechaRegistro:        registered,
	}
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	t0 := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	a := row("100", "ana.perez@cidenet.com.co", t0)
	require.NoError(t, repo.CreateEmployee(ctx, a))
	assert.NotZero(t, a.ID)
	assert.Equal(t, domain.EstadoActivo, a.Estado)

	b := row("200", "ana.perez1@cidenet.com.co", t0.Add(time.Hour))
	require.NoError(t, repo.CreateEmployee(ctx, b))

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "newest registration first")
	assert.True(t, list[1].FechaRegistro.Equal(t0))

	got, err := repo.GetEmployee(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana.perez@cidenet.com.co", got.Email)

	got.Area = domain.AreaCompras
	got.OtrosNombres = "MARIA"
	require.NoError(t, repo.UpdateEmployee(ctx, got))
	got, err = repo.GetEmployee(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AreaCompras, got.Area)
	assert.Equal(t, "MARIA", got.OtrosNombres)

	require.NoError(t, repo.DeleteEmployee(ctx, a.ID))
	_, err = repo.GetEmployee(ctx, a.ID)
	assert.ErrorIs(t, err, sqlite.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteEmployee(ctx, a.ID), sqlite.ErrNotFound)

	missing := row("300", "x@cidenet.com.co", t0)
	missing.ID = 9999
	assert.ErrorIs(t, repo.UpdateEmployee(ctx, missing), sqlite.ErrNotFound)
}

func TestRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	a := row("100", "ana.perez@cidenet.com.co", time.Now())
	require.NoError(t, repo.CreateEmployee(ctx, a))

	ok, err := repo.EmailExists(ctx, "ana.perez@cidenet.com.co")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.EmailExists(ctx, "ana.perez1@cidenet.com.co")
	require.NoError(t, err)
	assert.False(t, ok)

	taken, err := repo.IdentificationTaken(ctx, domain.TipoCedulaCiudadania, "100", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.IdentificationTaken(ctx, domain.TipoCedulaCiudadania, "100", a.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own record is excluded")
	taken, err = repo.IdentificationTaken(ctx, domain.TipoPasaporte, "100", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.CreateEmployee(ctx, row("100", "a@cidenet.com.co", time.Now())))
	err := repo.CreateEmployee(ctx, row("100", "b@cidenet.com.co", time.Now()))
	assert.ErrorIs(t, err, sqlite.ErrDuplicate)
}

func TestRepository_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "employees.db")
	repo, err := sqlite.New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repo.CreateEmployee(ctx, row("100", "a@cidenet.com.co", time.Now())))
	require.NoError(t, repo.Close())

	repo, err = sqlite.New(ctx, path)
	require.NoError(t, err)
	defer repo.Close()
	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
