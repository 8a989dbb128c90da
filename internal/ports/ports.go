package ports

import (
	"context"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

// EmployeeAPI is the remote employee service as the controller sees it.
// Each call is a single exchange; implementations keep no state between calls.
type EmployeeAPI interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, d domain.FormDraft) (domain.MutationResult, error)
	UpdateEmployee(ctx context.Context, id domain.EmployeeID, d domain.FormDraft) (domain.MutationResult, error)
	DeleteEmployee(ctx context.Context, id domain.EmployeeID) error
}

// Confirmer decides whether a destructive action may proceed. Declining is
// not an error.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// EmployeeStore defines persistence operations used by the development backend.
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]domain.StoredEmployee, error)
	GetEmployee(ctx context.Context, id int64) (*domain.StoredEmployee, error)
	CreateEmployee(ctx context.Context, e *domain.StoredEmployee) error
	UpdateEmployee(ctx context.Context, e *domain.StoredEmployee) error
	DeleteEmployee(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string) (bool, error)
	IdentificationTaken(ctx context.Context, tipo, numero string, exceptID int64) (bool, error)
}
