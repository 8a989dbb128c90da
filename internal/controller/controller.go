// Package controller holds the record-management state machine: the cached
// employee collection, the open form and its draft, and the busy/error flags
// a renderer displays.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
	"github.com/laflopet/Employee-onboarding-system/internal/normalize"
	"github.com/laflopet/Employee-onboarding-system/internal/ports"
)

// Controller owns the view state. All intents are safe to call from
// concurrent goroutines; at most one API operation runs at a time.
type Controller struct {
	api     ports.EmployeeAPI
	confirm ports.Confirmer
	log     *slog.Logger

	// inflight has capacity one; holding it is what Busy reports.
	inflight *semaphore.Weighted

	mu        sync.Mutex
	view      View
	mode      Mode
	target    domain.EmployeeID
	draft     domain.FormDraft
	epoch     uint64 // bumped whenever a form opens or closes
	busy      bool
	lastError string
	notice    string
	employees []domain.Employee
	listeners map[int]func(State)
	nextID    int
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New returns a controller in the Browsing view with an empty collection.
// A nil confirm declines every deletion.
func New(api ports.EmployeeAPI, confirm ports.Confirmer, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		confirm:   confirm,
		log:       slog.Default(),
		inflight:  semaphore.NewWeighted(1),
		employees: []domain.Employee{},
		listeners: map[int]func(State){},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns a snapshot that later transitions do not modify.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Employee looks a record up in the cached collection.
func (c *Controller) Employee(id domain.EmployeeID) (domain.Employee, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.employees {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Employee{}, false
}

// Subscribe registers fn to receive a snapshot after every transition.
// The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// LoadAll refreshes the cached collection. On failure the previous
// collection stays and LastError is set.
func (c *Controller) LoadAll(ctx context.Context) error {
	if !c.inflight.TryAcquire(1) {
		return ErrBusy
	}
	c.markBusy()
	defer c.done()
	c.load(ctx)
	return nil
}

// OpenCreateForm opens an empty form with the default choices.
func (c *Controller) OpenCreateForm() {
	c.mu.Lock()
	c.openLocked(ModeCreate, "", domain.DefaultDraft())
	c.mu.Unlock()
	c.notify()
}

// OpenEditForm opens the form on e, copying its editable fields.
func (c *Controller) OpenEditForm(e domain.Employee) error {
	if e.ID == "" {
		return ErrMissingID
	}
	c.mu.Lock()
	c.openLocked(ModeEdit, e.ID, domain.DraftFrom(e))
	c.mu.Unlock()
	c.notify()
	return nil
}

// UpdateDraftField normalizes raw and stores it in the open draft.
func (c *Controller) UpdateDraftField(field, raw string) error {
	c.mu.Lock()
	if c.view != FormOpen {
		c.mu.Unlock()
		return ErrInvalidState
	}
	if !c.draft.Set(field, normalize.Field(field, raw)) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// Submit sends the draft as a create or update depending on the mode. On
// success the form closes and the collection is refreshed once; on failure
// the form stays open with its draft and LastError is set. If the form was
// cancelled or reopened meanwhile, the result no longer touches the form.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.view != FormOpen {
		c.mu.Unlock()
		return ErrInvalidState
	}
	c.mu.Unlock()
	if !c.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer c.done()

	c.mu.Lock()
	if c.view != FormOpen {
		c.mu.Unlock()
		return ErrInvalidState
	}
	mode, target, draft, epoch := c.mode, c.target, c.draft, c.epoch
	c.busy, c.lastError, c.notice = true, "", ""
	c.mu.Unlock()
	c.notify()

	var (
		res domain.MutationResult
		err error
	)
	if mode == ModeEdit {
		res, err = c.api.UpdateEmployee(ctx, target, draft)
	} else {
		res, err = c.api.CreateEmployee(ctx, draft)
	}

	c.mu.Lock()
	current := c.epoch == epoch
	if err != nil {
		c.log.Error("save employee", "mode", mode, "id", target, "err", err)
		if current {
			c.lastError = mutationMessage(err, MsgSaveFailed)
		}
		c.mu.Unlock()
		c.notify()
		return nil
	}
	if current {
		c.closeLocked()
		c.notice = res.Message
		if c.notice == "" {
			c.notice = MsgCreated
			if mode == ModeEdit {
				c.notice = MsgUpdated
			}
		}
	}
	c.mu.Unlock()
	c.notify()

	c.load(ctx)
	return nil
}

// CancelForm discards the draft. It is accepted while busy; an in-flight
// submit then finishes without affecting the form.
func (c *Controller) CancelForm() error {
	c.mu.Lock()
	if c.view != FormOpen {
		c.mu.Unlock()
		return ErrInvalidState
	}
	c.closeLocked()
	c.mu.Unlock()
	c.notify()
	return nil
}

// RequestDelete deletes id after the confirmer agrees, then refreshes the
// collection whatever the delete's outcome. Declining is a no-op.
func (c *Controller) RequestDelete(ctx context.Context, id domain.EmployeeID) error {
	c.mu.Lock()
	view := c.view
	c.mu.Unlock()
	if view != Browsing {
		return ErrInvalidState
	}
	if !c.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer c.done()

	// Busy covers the prompt too; messages stay until the user agrees.
	c.mu.Lock()
	c.busy = true
	c.mu.Unlock()
	c.notify()
	ok, err := c.confirmDelete(ctx)
	if err != nil || !ok {
		return err
	}
	c.markBusy()

	if err := c.api.DeleteEmployee(ctx, id); err != nil {
		c.log.Error("delete employee", "id", id, "err", err)
		c.mu.Lock()
		c.lastError = mutationMessage(err, MsgDeleteFailed)
		c.mu.Unlock()
	} else {
		c.mu.Lock()
		c.notice = MsgDeleted
		c.mu.Unlock()
	}
	c.notify()

	c.load(ctx)
	return nil
}

func (c *Controller) confirmDelete(ctx context.Context) (bool, error) {
	if c.confirm == nil {
		return false, nil
	}
	ok, err := c.confirm.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	return ok, nil
}

// load fetches the collection; the caller holds the in-flight slot.
func (c *Controller) load(ctx context.Context) {
	list, err := c.api.ListEmployees(ctx)
	c.mu.Lock()
	if err != nil {
		c.log.Error("load employees", "err", err)
		c.lastError = MsgLoadFailed
	} else {
		if list == nil {
			list = []domain.Employee{}
		}
		c.employees = list
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) markBusy() {
	c.mu.Lock()
	c.busy, c.lastError, c.notice = true, "", ""
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) done() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
	c.inflight.Release(1)
	c.notify()
}

func (c *Controller) openLocked(mode Mode, target domain.EmployeeID, d domain.FormDraft) {
	c.view, c.mode, c.target, c.draft = FormOpen, mode, target, d
	c.epoch++
	c.lastError, c.notice = "", ""
}

func (c *Controller) closeLocked() {
	c.view, c.mode, c.target, c.draft = Browsing, ModeNone, "", domain.FormDraft{}
	c.epoch++
}

func (c *Controller) snapshot() State {
	s := State{
		View:      c.view,
		Mode:      c.mode,
		TargetID:  c.target,
		Busy:      c.busy,
		LastError: c.lastError,
		Notice:    c.notice,
		Employees: slices.Clone(c.employees),
	}
	if c.view == FormOpen {
		d := c.draft
		s.Draft = &d
	}
	return s
}

func (c *Controller) notify() {
	c.mu.Lock()
	if len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}
	s := c.snapshot()
	fns := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// mutationMessage prefers the backend's error text over the fallback.
func mutationMessage(err error, fallback string) string {
	var mf *domain.MutationFailure
	if errors.As(err, &mf) && mf.Message != "" {
		return mf.Message
	}
	return fallback
}
