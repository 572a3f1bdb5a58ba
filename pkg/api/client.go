// Package api is the typed client for the scheduling REST service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rotaplan/rota/pkg/bus"
	"github.com/rotaplan/rota/pkg/schedule"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultAttempts   = 3
	defaultRetryDelay = time.Second
)

// Client talks to the scheduling API. Construct with New; the zero value is
// not usable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   int
	retryDelay time.Duration
	events     *bus.Bus
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetry overrides the attempt count and base backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.retryDelay = delay
	}
}

// WithBus attaches an event bus; terminal request failures are published on
// bus.TopicAPIError. A nil bus is allowed.
func WithBus(b *bus.Bus) Option {
	return func(c *Client) { c.events = b }
}

// WithLogger enables request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client rooted at baseURL, which should include the /api
// prefix's host part only (for example http://localhost:5000).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one request with retries. Transport errors and 5xx responses are
// retried up to the attempt limit with linear backoff; 4xx responses are
// terminal immediately. The body is rebuilt from payload on every attempt.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, contentType string, out any) error {
	requestID := uuid.NewString()
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			delay := c.retryDelay * time.Duration(attempt-1)
			if c.logger != nil {
				c.logger.Printf("api: retrying %s %s in %s (attempt %d/%d)", method, path, delay, attempt, c.attempts)
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("api: %s %s: %w", method, path, ctx.Err())
			}
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("api: building %s %s: %w", method, path, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("api: %s %s: %w", method, path, err)
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("api: reading %s %s response: %w", method, path, readErr)
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = newAPIError(method, path, resp.StatusCode, respBody)
			continue
		}
		if resp.StatusCode >= 400 {
			apiErr := newAPIError(method, path, resp.StatusCode, respBody)
			c.reportFailure(apiErr, requestID)
			return apiErr
		}

		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("api: decoding %s %s response: %w", method, path, err)
			}
			// The service wraps every body in a success envelope; a 2xx
			// carrying success:false is still a failed request.
			if sc, ok := out.(statusCarrier); ok {
				if succeeded, msg := sc.status(); !succeeded {
					if msg == "" {
						msg = fmt.Sprintf("%s %s reported failure", method, path)
					}
					apiErr := &APIError{Message: msg, StatusCode: resp.StatusCode, Body: string(respBody)}
					c.reportFailure(apiErr, requestID)
					return apiErr
				}
			}
		}
		return nil
	}

	c.reportFailure(lastErr, requestID)
	return lastErr
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encoding %s %s request: %w", method, path, err)
		}
	}
	contentType := ""
	if payload != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, payload, contentType, out)
}

// reportFailure publishes a terminal request failure on the bus.
func (c *Client) reportFailure(err error, requestID string) {
	if c.events == nil || err == nil {
		return
	}
	c.events.Publish(bus.TopicAPIError, Failure{RequestID: requestID, Err: err})
}

// Failure is the payload published on bus.TopicAPIError.
type Failure struct {
	RequestID string
	Err       error
}

// envelope is the wrapper the service puts around every response body:
// {"success": bool, "error": "...", ...payload...}.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (e envelope) status() (bool, string) { return e.Success, e.Error }

// statusCarrier lets do inspect the envelope after decoding.
type statusCarrier interface {
	status() (bool, string)
}

type employeesResponse struct {
	envelope
	Employees []schedule.Employee `json:"employees"`
}

type employeeResponse struct {
	envelope
	Employee schedule.Employee `json:"employee"`
}

type shiftsResponse struct {
	envelope
	Shifts []schedule.Shift `json:"shifts"`
}

type shiftResponse struct {
	envelope
	Shift schedule.Shift `json:"shift"`
}

type healthResponse struct {
	envelope
	Status string `json:"status"`
}

type versionResponse struct {
	envelope
	VersionInfo
}

// ListEmployees fetches every employee record.
func (c *Client) ListEmployees(ctx context.Context) ([]schedule.Employee, error) {
	var out employeesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/employees", nil, &out); err != nil {
		return nil, err
	}
	return out.Employees, nil
}

// ListShifts fetches every shift record.
func (c *Client) ListShifts(ctx context.Context) ([]schedule.Shift, error) {
	var out shiftsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/shifts", nil, &out); err != nil {
		return nil, err
	}
	return out.Shifts, nil
}

// CreateShift creates a shift and returns the stored record.
func (c *Client) CreateShift(ctx context.Context, s schedule.Shift) (schedule.Shift, error) {
	var out shiftResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/shifts", s, &out); err != nil {
		return schedule.Shift{}, err
	}
	return out.Shift, nil
}

// UpdateShift replaces the shift with the given id.
func (c *Client) UpdateShift(ctx context.Context, s schedule.Shift) error {
	var out shiftResponse
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/shifts/%d", s.ID), s, &out)
}

// ReassignShift moves a shift to another employee, keeping its time slot.
func (c *Client) ReassignShift(ctx context.Context, shiftID, employeeID int) error {
	body := map[string]int{"employee_id": employeeID}
	var out shiftResponse
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/shifts/%d", shiftID), body, &out)
}

// DeleteShift removes a shift.
func (c *Client) DeleteShift(ctx context.Context, id int) error {
	var out envelope
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/shifts/%d", id), nil, &out)
}

// MoveRequest is the payload for MoveShift.
type MoveRequest struct {
	Day          schedule.Weekday `json:"day"`
	StartHour    int              `json:"start_hour"`
	StartMinutes int              `json:"start_minutes"`
}

// MoveShift relocates a shift to a new grid cell.
func (c *Client) MoveShift(ctx context.Context, id int, day schedule.Weekday, hour, minutes int) error {
	body := MoveRequest{Day: day, StartHour: hour, StartMinutes: minutes}
	var out shiftResponse
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/shifts/%d/move", id), body, &out)
}

// CreateEmployee creates an employee and returns the stored record.
func (c *Client) CreateEmployee(ctx context.Context, e schedule.Employee) (schedule.Employee, error) {
	var out employeeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/employees", e, &out); err != nil {
		return schedule.Employee{}, err
	}
	return out.Employee, nil
}

// UpdateEmployee replaces the employee with the given id.
func (c *Client) UpdateEmployee(ctx context.Context, e schedule.Employee) error {
	var out employeeResponse
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/employees/%d", e.ID), e, &out)
}

// DeleteEmployee removes an employee.
func (c *Client) DeleteEmployee(ctx context.Context, id int) error {
	var out envelope
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/employees/%d", id), nil, &out)
}

// Sync pushes a full snapshot of local state to the server.
func (c *Client) Sync(ctx context.Context, snap Snapshot) error {
	var out envelope
	return c.doJSON(ctx, http.MethodPost, "/api/sync", snap, &out)
}

// Health probes the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out healthResponse
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, &out)
}

// VersionInfo is the server build description.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Version fetches the server build description.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var out versionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/version", nil, &out); err != nil {
		return VersionInfo{}, err
	}
	return out.VersionInfo, nil
}

// Snapshot is the sync payload: the full exported local state.
type Snapshot struct {
	Employees []schedule.Employee `json:"employees"`
	Shifts    []schedule.Shift    `json:"shifts"`
	Meta      SnapshotMeta        `json:"meta"`
}

// SnapshotMeta describes when and from what a snapshot was taken.
type SnapshotMeta struct {
	ExportedAt time.Time `json:"exported_at"`
	Version    string    `json:"version"`
	Employees  int       `json:"employee_count"`
	Shifts     int       `json:"shift_count"`
}
