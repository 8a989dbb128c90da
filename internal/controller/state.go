package controller

import (
	"errors"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

var (
	// ErrBusy is returned when an API operation is already in flight.
	ErrBusy = errors.New("controller: operation in progress")
	// ErrInvalidState is returned when an intent does not apply to the current view.
	ErrInvalidState = errors.New("controller: intent not valid in current view")
	ErrUnknownField = errors.New("controller: unknown draft field")
	ErrMissingID    = errors.New("controller: employee has no id")
)

// View is the top-level view state.
type View int

const (
	Browsing View = iota
	FormOpen
)

func (v View) String() string {
	if v == FormOpen {
		return "form-open"
	}
	return "browsing"
}

// Mode qualifies FormOpen.
type Mode int

const (
	ModeNone Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	}
	return "none"
}

// Messages shown when the backend gives none.
const (
	MsgLoadFailed   = "Error al cargar empleados"
	MsgSaveFailed   = "Error al guardar empleado"
	MsgDeleteFailed = "Error al eliminar empleado"
	MsgCreated      = "Empleado creado exitosamente"
	MsgUpdated      = "Empleado actualizado exitosamente"
	MsgDeleted      = "Empleado eliminado exitosamente"

	DeletePrompt = "¿Estás seguro de eliminar este empleado?"
)

// State is a snapshot of the controller. Draft is non-nil exactly when
// View is FormOpen; TargetID is set only in ModeEdit.
type State struct {
	View      View
	Mode      Mode
	TargetID  domain.EmployeeID
	Draft     *domain.FormDraft
	Busy      bool
	LastError string
	Notice    string
	Employees []domain.Employee
}

// Editing reports whether the form is open on an existing record.
func (s State) Editing() bool { return s.View == FormOpen && s.Mode == ModeEdit }
