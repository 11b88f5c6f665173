package auditctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"auditservice/internal/auditevents"
	"auditservice/internal/health"
	"auditservice/internal/models"
	"auditservice/internal/utils"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Body       utils.ErrorResponse
}

func (e *APIError) Error() string {
	msg := e.Body.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Body.Details) > 0 {
		msg += ": " + strings.Join(e.Body.Details, ", ")
	}
	return fmt.Sprintf("%d %s", e.StatusCode, msg)
}

// Client talks to a running audit service.
type Client struct {
	base string
	http *http.Client
}

// NewClient accepts host:port or a full base URL.
func NewClient(host string) *Client {
	base := strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	return c.text(ctx, "/meta/ping")
}

func (c *Client) Version(ctx context.Context) (string, error) {
	return c.text(ctx, "/meta/version")
}

func (c *Client) Health(ctx context.Context) (health.Response, error) {
	var out health.Response
	err := c.getJSON(ctx, "/health", nil, &out)
	return out, err
}

func (c *Client) ListEvents(ctx context.Context, params url.Values) (auditevents.ListResponse, error) {
	var out auditevents.ListResponse
	err := c.getJSON(ctx, "/api/v1/audit_events", params, &out)
	return out, err
}

func (c *Client) EntityEvents(ctx context.Context, entityID string, params url.Values) (auditevents.ListResponse, error) {
	var out auditevents.ListResponse
	err := c.getJSON(ctx, "/api/v1/audit_events/entity/"+url.PathEscape(entityID), params, &out)
	return out, err
}

func (c *Client) ShowEvent(ctx context.Context, id string) (models.AuditEvent, error) {
	var out auditevents.EventResponse
	err := c.getJSON(ctx, "/api/v1/audit_events/"+url.PathEscape(id), nil, &out)
	return out.Data, err
}

func (c *Client) do(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	target := c.base + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()

		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
		return nil, apiErr
	}

	return resp, nil
}

func (c *Client) text(ctx context.Context, path string) (string, error) {
	resp, err := c.do(ctx, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.do(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
