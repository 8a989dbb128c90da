package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

var (
	ErrNotFound  = errors.New("employee not found")
	ErrDuplicate = errors.New("employee violates a uniqueness constraint")
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

type Repository struct {
	db *sqlx.DB
}

// New opens the SQLite database at dsn and applies the embedded migrations.
func New(ctx context.Context, dsn string) (*Repository, error) {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sqlx.Open("sqlite3", dsn+sep+"_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	if err := migrate(ctx, db.DB); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

func migrate(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer func() {
		goose.SetBaseFS(nil)
		gooseMu.Unlock()
	}()
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sqlite: set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("sqlite: apply migrations: %w", err)
	}
	return nil
}

const columns = `id, primer_apellido, segundo_apellido, primer_nombre, otros_nombres,
	pais_empleo, tipo_identificacion, numero_identificacion, email,
	fecha_ingreso, area, estado, fecha_registro`

// ListEmployees returns every employee, newest registration first.
func (r *Repository) ListEmployees(ctx context.Context) ([]domain.StoredEmployee, error) {
	list := []domain.StoredEmployee{}
	err := r.db.SelectContext(ctx, &list,
		`SELECT `+columns+` FROM employees ORDER BY fecha_registro DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list employees: %w", err)
	}
	return list, nil
}

func (r *Repository) GetEmployee(ctx context.Context, id int64) (*domain.StoredEmployee, error) {
	var e domain.StoredEmployee
	err := r.db.GetContext(ctx, &e, `SELECT `+columns+` FROM employees WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get employee %d: %w", id, err)
	}
	return &e, nil
}

// CreateEmployee inserts e and fills in its ID. FechaRegistro and Estado are
// set here when empty.
func (r *Repository) CreateEmployee(ctx context.Context, e *domain.StoredEmployee) error {
	if e.FechaRegistro.IsZero() {
		e.FechaRegistro = time.Now()
	}
	if e.Estado == "" {
		e.Estado = domain.EstadoActivo
	}
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO employees (
			primer_apellido, segundo_apellido, primer_nombre, otros_nombres,
			pais_empleo, tipo_identificacion, numero_identificacion, email,
			fecha_ingreso, area, estado, fecha_registro
		) VALUES (
			:primer_apellido, :segundo_apellido, :primer_nombre, :otros_nombres,
			:pais_empleo, :tipo_identificacion, :numero_identificacion, :email,
			:fecha_ingreso, :area, :estado, :fecha_registro
		)`, e)
	if err != nil {
		return writeErr("create", err)
	}
	id, _ := res.LastInsertId()
	e.ID = id
	return nil
}

func (r *Repository) UpdateEmployee(ctx context.Context, e *domain.StoredEmployee) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE employees
		SET primer_apellido=:primer_apellido, segundo_apellido=:segundo_apellido,
		    primer_nombre=:primer_nombre, otros_nombres=:otros_nombres,
		    pais_empleo=:pais_empleo, tipo_identificacion=:tipo_identificacion,
		    numero_identificacion=:numero_identificacion, email=:email,
		    fecha_ingreso=:fecha_ingreso, area=:area, estado=:estado
		WHERE id=:id`, e)
	if err != nil {
		return writeErr("update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete employee %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM employees WHERE email=?`, email); err != nil {
		return false, fmt.Errorf("sqlite: lookup email: %w", err)
	}
	return n > 0, nil
}

// IdentificationTaken reports whether another employee (id != exceptID)
// already holds the document type and number.
func (r *Repository) IdentificationTaken(ctx context.Context, tipo, numero string, exceptID int64) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM employees
		WHERE tipo_identificacion=? AND numero_identificacion=? AND id<>?`,
		tipo, numero, exceptID)
	if err != nil {
		return false, fmt.Errorf("sqlite: lookup identification: %w", err)
	}
	return n > 0, nil
}

func writeErr(op string, err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("sqlite: %s employee: %w: %v", op, ErrDuplicate, err)
	}
	return fmt.Errorf("sqlite: %s employee: %w", op, err)
}
