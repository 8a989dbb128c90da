// Package backend is a development implementation of the employee REST
// service the admin tool talks to, backed by an EmployeeStore.
package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/laflopet/Employee-onboarding-system/internal/adapters/sqlite"
	"github.com/laflopet/Employee-onboarding-system/internal/domain"
	"github.com/laflopet/Employee-onboarding-system/internal/ports"
)

const (
	Prefix = "/api/v1"

	MsgListed   = "Lista de empleados obtenida exitosamente"
	MsgCreated  = "Empleado registrado exitosamente"
	MsgUpdated  = "Empleado actualizado exitosamente"
	MsgNotFound = "No encontrado."
	MsgBadBody  = "Cuerpo de la solicitud inválido."
	MsgDupID    = "Ya existe un empleado con este tipo y número de identificación."
	MsgFuture   = "La fecha de ingreso no puede ser futura."
	MsgTooOld   = "La fecha de ingreso no puede ser anterior a un mes."
	MsgInternal = "Error interno del servidor."
)

type Server struct {
	store    ports.EmployeeStore
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
	domainCO string
	domainUS string
	window   int
	metrics  *metrics

	// creates are serialized so generated emails cannot collide.
	createMu sync.Mutex
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.log = l } }

// WithClock replaces time.Now for hire-date checks and registration stamps.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// WithEmailDomains sets the domains for Colombia and for every other country.
func WithEmailDomains(co, other string) Option {
	return func(s *Server) { s.domainCO, s.domainUS = co, other }
}

// WithHireWindow sets how many days in the past a hire date may be.
func WithHireWindow(days int) Option { return func(s *Server) { s.window = days } }

func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.metrics = newMetrics(reg) }
}

func New(store ports.EmployeeStore, opts ...Option) *Server {
	s := &Server{
		store:    store,
		validate: newValidator(),
		log:      slog.Default(),
		now:      time.Now,
		domainCO: "cidenet.com.co",
		domainUS: "cidenet.com.us",
		window:   30,
	}
	for _, o := range opts {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = newMetrics(prometheus.NewRegistry())
	}
	return s
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "GET "+Prefix+"/employees/{$}", s.listEmployees)
	s.handle(mux, "POST "+Prefix+"/employees/{$}", s.createEmployee)
	s.handle(mux, "GET "+Prefix+"/employees/{id}/{$}", s.getEmployee)
	s.handle(mux, "PUT "+Prefix+"/employees/{id}/{$}", s.updateEmployee)
	s.handle(mux, "DELETE "+Prefix+"/employees/{id}/{$}", s.deleteEmployee)
	mux.Handle("GET /metrics", s.metrics.handler())
	return mux
}

func (s *Server) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.HandleFunc(pattern, s.metrics.instrument(pattern, fn))
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListEmployees(r.Context())
	if err != nil {
		s.internal(w, "list employees", err)
		return
	}
	data := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		data = append(data, row.Employee())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(data),
		"message": MsgListed,
		"data":    data,
	})
}

func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	row, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": row.Employee()})
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDraft(w, r, 0)
	if !ok {
		return
	}
	s.createMu.Lock()
	defer s.createMu.Unlock()

	row := &domain.StoredEmployee{Estado: domain.EstadoActivo, FechaRegistro: s.now()}
	row.Apply(d)
	email, err := s.generateEmail(r, row)
	if err != nil {
		s.internal(w, "generate email", err)
		return
	}
	row.Email = email
	if err := s.store.CreateEmployee(r.Context(), row); err != nil {
		if errors.Is(err, sqlite.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, MsgDupID, FieldErrors{domain.FieldNumeroIdentificacion: MsgDupID})
			return
		}
		s.internal(w, "create employee", err)
		return
	}
	s.log.Info("employee created", "id", row.ID, "email", row.Email)
	writeJSON(w, http.StatusCreated, map[string]any{"message": MsgCreated, "data": row.Employee()})
}

func (s *Server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	row, ok := s.lookup(w, r)
	if !ok {
		return
	}
	d, ok := s.decodeDraft(w, r, row.ID)
	if !ok {
		return
	}
	row.Apply(d)
	if err := s.store.UpdateEmployee(r.Context(), row); err != nil {
		switch {
		case errors.Is(err, sqlite.ErrNotFound):
			writeError(w, http.StatusNotFound, MsgNotFound, nil)
		case errors.Is(err, sqlite.ErrDuplicate):
			writeError(w, http.StatusBadRequest, MsgDupID, FieldErrors{domain.FieldNumeroIdentificacion: MsgDupID})
		default:
			s.internal(w, "update employee", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": MsgUpdated, "data": row.Employee()})
}

func (s *Server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, MsgNotFound, nil)
		return
	}
	if err := s.store.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusNotFound, MsgNotFound, nil)
			return
		}
		s.internal(w, "delete employee", err)
		return
	}
	s.log.Info("employee deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {id} path value, writing a 404 when absent.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*domain.StoredEmployee, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, MsgNotFound, nil)
		return nil, false
	}
	row, err := s.store.GetEmployee(r.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, MsgNotFound, nil)
		return nil, false
	}
	if err != nil {
		s.internal(w, "get employee", err)
		return nil, false
	}
	return row, true
}

// decodeDraft reads and validates the body. selfID excludes the record being
// updated from the identification uniqueness check.
func (s *Server) decodeDraft(w http.ResponseWriter, r *http.Request, selfID int64) (domain.FormDraft, bool) {
	var d domain.FormDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, MsgBadBody, nil)
		return d, false
	}
	if fields, first := s.validateDraft(d); fields != nil {
		writeError(w, http.StatusBadRequest, first, fields)
		return d, false
	}
	if msg := s.checkHireDate(d.FechaIngreso); msg != "" {
		writeError(w, http.StatusBadRequest, domain.FieldFechaIngreso+": "+msg, FieldErrors{domain.FieldFechaIngreso: msg})
		return d, false
	}
	taken, err := s.store.IdentificationTaken(r.Context(), d.TipoIdentificacion, d.NumeroIdentificacion, selfID)
	if err != nil {
		s.internal(w, "check identification", err)
		return d, false
	}
	if taken {
		writeError(w, http.StatusBadRequest, MsgDupID, FieldErrors{domain.FieldNumeroIdentificacion: MsgDupID})
		return d, false
	}
	return d, true
}

// checkHireDate rejects dates after today or more than window days back.
// The value has already passed the datetime validation.
func (s *Server) checkHireDate(v string) string {
	now := s.now()
	day, err := time.ParseInLocation(time.DateOnly, v, now.Location())
	if err != nil {
		return "Fecha inválida, use el formato AAAA-MM-DD."
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.After(today):
		return MsgFuture
	case day.Before(today.AddDate(0, 0, -s.window)):
		return MsgTooOld
	}
	return ""
}

// generateEmail builds nombre.apellido@domain, appending the first free
// counter when the plain address is taken.
func (s *Server) generateEmail(r *http.Request, e *domain.StoredEmployee) (string, error) {
	dom := s.domainUS
	if e.PaisEmpleo == domain.PaisColombia {
		dom = s.domainCO
	}
	base := strings.ToLower(e.PrimerNombre) + "." + strings.ToLower(e.PrimerApellido)
	for n := 0; ; n++ {
		local := base
		if n > 0 {
			local += strconv.Itoa(n)
		}
		email := local + "@" + dom
		taken, err := s.store.EmailExists(r.Context(), email)
		if err != nil {
			return "", err
		}
		if !taken {
			return email, nil
		}
	}
}

func (s *Server) internal(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, "err", err)
	writeError(w, http.StatusInternalServerError, MsgInternal, nil)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "err", fmt.Errorf("encode: %w", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string, fields FieldErrors) {
	body := map[string]any{"error": msg}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	writeJSON(w, status, body)
}
