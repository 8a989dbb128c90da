package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/laflopet/Employee-onboarding-system/internal/adapters/pdf"
	"github.com/laflopet/Employee-onboarding-system/internal/controller"
	"github.com/laflopet/Employee-onboarding-system/internal/domain"
	"github.com/laflopet/Employee-onboarding-system/internal/normalize"
	"github.com/laflopet/Employee-onboarding-system/internal/ports"
	"github.com/laflopet/Employee-onboarding-system/internal/templates"
)

// Records is the controller surface the web renderer drives.
type Records interface {
	State() controller.State
	Employee(id domain.EmployeeID) (domain.Employee, bool)
	LoadAll(ctx context.Context) error
	OpenCreateForm()
	OpenEditForm(e domain.Employee) error
	UpdateDraftField(field, raw string) error
	Submit(ctx context.Context) error
	CancelForm() error
	RequestDelete(ctx context.Context, id domain.EmployeeID) error
}

type confirmKey struct{}

// WithConfirmation marks ctx as carrying the user's answer to a prompt.
func WithConfirmation(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, ok)
}

// Confirmer answers from the request context: the browser has already asked
// the user, and the request says what they chose.
var Confirmer = ports.ConfirmFunc(func(ctx context.Context, _ string) (bool, error) {
	ok, _ := ctx.Value(confirmKey{}).(bool)
	return ok, nil
})

type Handler struct {
	records Records
	log     *slog.Logger
	now     func() time.Time
}

func New(records Records, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{records: records, log: log, now: time.Now}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /refresh", h.refresh)
	mux.HandleFunc("POST /form/new", h.openCreate)
	mux.HandleFunc("POST /form/edit/{id}", h.openEdit)
	mux.HandleFunc("POST /form/field", h.updateField)
	mux.HandleFunc("POST /form/submit", h.submit)
	mux.HandleFunc("POST /form/cancel", h.cancel)
	mux.HandleFunc("POST /employees/{id}/delete", h.deleteEmployee)
	mux.HandleFunc("GET /export.pdf", h.exportPDF)
	return mux
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Page(h.records.State()))
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if !h.check(w, h.records.LoadAll(r.Context())) {
		return
	}
	h.workspace(w, r)
}

func (h *Handler) openCreate(w http.ResponseWriter, r *http.Request) {
	h.records.OpenCreateForm()
	h.workspace(w, r)
}

func (h *Handler) openEdit(w http.ResponseWriter, r *http.Request) {
	e, ok := h.records.Employee(domain.EmployeeID(r.PathValue("id")))
	if !ok {
		http.Error(w, "empleado no encontrado", http.StatusNotFound)
		return
	}
	if !h.check(w, h.records.OpenEditForm(e)) {
		return
	}
	h.workspace(w, r)
}

// updateField stores one input and renders it back normalized.
func (h *Handler) updateField(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	field := r.FormValue("field")
	if !h.check(w, h.records.UpdateDraftField(field, entry(field, r.FormValue(field)))) {
		return
	}
	s := h.records.State()
	var v string
	if s.Draft != nil {
		v, _ = s.Draft.Get(field)
	}
	render(w, r, templates.FieldInput(templates.Field(field, v)))
}

// submit applies every posted field before submitting, so values whose
// change event never fired are not lost.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, field := range domain.DraftFields {
		if _, ok := r.PostForm[field]; !ok {
			continue
		}
		if !h.check(w, h.records.UpdateDraftField(field, entry(field, r.PostFormValue(field)))) {
			return
		}
	}
	if !h.check(w, h.records.Submit(r.Context())) {
		return
	}
	h.workspace(w, r)
}

// entry normalizes raw, then applies the input's maxlength. Case mapping can
// lengthen a value ("ß" becomes "SS"), so the clamp comes second.
func entry(field, raw string) string {
	return normalize.Clamp(field, normalize.Field(field, raw))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	if !h.check(w, h.records.CancelForm()) {
		return
	}
	h.workspace(w, r)
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := WithConfirmation(r.Context(), r.FormValue("confirm") == "yes")
	if !h.check(w, h.records.RequestDelete(ctx, domain.EmployeeID(r.PathValue("id")))) {
		return
	}
	h.workspace(w, r)
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	var buf bytes.Buffer
	if err := pdf.GenerateRoster(h.records.State().Employees, now, &buf); err != nil {
		h.log.Error("export roster", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("empleados_%s.pdf", now.Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

func (h *Handler) workspace(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Workspace(h.records.State()))
}

// check maps controller rejections to HTTP statuses. It reports whether the
// handler should go on rendering.
func (h *Handler) check(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, controller.ErrBusy):
		http.Error(w, "operación en curso", http.StatusConflict)
	case errors.Is(err, controller.ErrInvalidState):
		http.Error(w, "acción no disponible", http.StatusConflict)
	case errors.Is(err, controller.ErrUnknownField), errors.Is(err, controller.ErrMissingID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error("request failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
	return false
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}
