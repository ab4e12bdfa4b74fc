package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CustomerStore defines the interface the table engine's callers use to talk
// to the remote store. Implemented by *Client; fakes implement it in tests.
type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	PatchCustomer(ctx context.Context, id string, patch CustomerPatch) error
	DeleteCustomer(ctx context.Context, id string) error
	ListAppointments(ctx context.Context) ([]Appointment, error)
	ListDue(ctx context.Context) ([]DueItem, error)
}

// Ensure Client implements CustomerStore at compile time.
var _ CustomerStore = (*Client)(nil)

// Client talks to the customer HTTP API.
type Client struct {
	baseURL   *url.URL
	token     string
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "kartei/0.1"
	requestTimeout   = 10 * time.Second
)

// StatusError reports a non-2xx response from the store. The body is kept
// verbatim so validation messages can be surfaced to the user.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("store returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("store returned status %d: %s", e.StatusCode, body)
}

// IsStoreRejection reports whether err is a definitive rejection by the store
// rather than a transport failure. Both roll back identically; they are
// distinguished only for diagnostics.
func IsStoreRejection(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// NewClient builds a Client for the given base URL using a bearer token.
func NewClient(baseURL, token string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		token:   token,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListCustomers retrieves the full customer collection.
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PatchCustomer updates the given fields of one customer record.
func (c *Client) PatchCustomer(ctx context.Context, id string, patch CustomerPatch) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("customer id required")
	}
	if len(patch) == 0 {
		return fmt.Errorf("empty patch")
	}
	return c.do(ctx, http.MethodPatch, "/customers/"+id, patch, nil)
}

// DeleteCustomer removes one customer record.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("customer id required")
	}
	return c.do(ctx, http.MethodDelete, "/customers/"+id, nil, nil)
}

// ListAppointments retrieves past appointments, newest first.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/history", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListDue retrieves customers with an inspection due.
func (c *Client) ListDue(ctx context.Context) ([]DueItem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []DueItem
	if err := c.do(ctx, http.MethodGet, "/appointments/due", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
