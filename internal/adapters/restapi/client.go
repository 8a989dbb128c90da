// Package restapi is the HTTP client for the employee REST service.
package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000/api/v1"

	collectionPath = "/employees/"
	itemPath       = "/employees/{id}/"
)

// Client maps the four employee operations onto REST calls. It never
// retries; each call is one exchange.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

type options struct {
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

type Option func(*options)

// WithTimeout bounds each exchange. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTPClient replaces the underlying transport, e.g. an httptest client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New returns a client rooted at baseURL (e.g. "http://host/api/v1").
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	r := resty.New()
	if o.httpClient != nil {
		r = resty.NewWithClient(o.httpClient)
	}
	r.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if o.timeout > 0 {
		r.SetTimeout(o.timeout)
	}
	return &Client{http: r, log: o.log}
}

type listEnvelope struct {
	Data []domain.Employee `json:"data"`
}

// ListEmployees returns the envelope's data, or an empty slice when the field
// is absent. Any failure is a *FetchFailure.
func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	resp, err := c.http.R().SetContext(ctx).Get(collectionPath)
	if err != nil {
		return nil, &domain.FetchFailure{Err: err}
	}
	if !resp.IsSuccess() {
		msg := errorMessage(resp.Body())
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return nil, &domain.FetchFailure{Status: resp.StatusCode(), Err: errors.New(msg)}
	}
	var env listEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, &domain.FetchFailure{Status: resp.StatusCode(), Err: fmt.Errorf("decode body: %w", err)}
	}
	if env.Data == nil {
		env.Data = []domain.Employee{}
	}
	c.log.Debug("employees listed", "count", len(env.Data))
	return env.Data, nil
}

// CreateEmployee posts the draft and returns the backend's body.
func (c *Client) CreateEmployee(ctx context.Context, d domain.FormDraft) (domain.MutationResult, error) {
	req := c.http.R().SetContext(ctx).SetBody(d)
	resp, err := req.Post(collectionPath)
	return c.mutationResult("create", resp, err)
}

// UpdateEmployee puts the draft at the record addressed by id.
func (c *Client) UpdateEmployee(ctx context.Context, id domain.EmployeeID, d domain.FormDraft) (domain.MutationResult, error) {
	req := c.http.R().SetContext(ctx).SetPathParam("id", id.String()).SetBody(d)
	resp, err := req.Put(itemPath)
	return c.mutationResult("update", resp, err)
}

// DeleteEmployee removes the record addressed by id.
func (c *Client) DeleteEmployee(ctx context.Context, id domain.EmployeeID) error {
	resp, err := c.http.R().SetContext(ctx).SetPathParam("id", id.String()).Delete(itemPath)
	if err := failure("delete", resp, err); err != nil {
		return err
	}
	c.log.Debug("employee deleted", "id", id)
	return nil
}

func (c *Client) mutationResult(op string, resp *resty.Response, err error) (domain.MutationResult, error) {
	if err := failure(op, resp, err); err != nil {
		return domain.MutationResult{}, err
	}
	var res domain.MutationResult
	if body := resp.Body(); len(body) > 0 {
		// A body without the expected shape is still a success; keep Raw.
		if err := json.Unmarshal(body, &res); err != nil {
			c.log.Warn("unexpected mutation body", "op", op, "err", err)
		}
		res.Raw = json.RawMessage(body)
	}
	c.log.Debug("employee mutated", "op", op, "status", resp.StatusCode())
	return res, nil
}

func failure(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &domain.MutationFailure{Op: op, Err: err}
	}
	if resp.IsSuccess() {
		return nil
	}
	return &domain.MutationFailure{
		Op:      op,
		Status:  resp.StatusCode(),
		Message: errorMessage(resp.Body()),
		Body:    resp.Body(),
	}
}
