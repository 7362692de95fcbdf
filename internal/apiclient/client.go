package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Scope selects how a collection GET is scoped to the owner.
type Scope int

const (
	// ScopeNone lists the whole collection: GET {base}{path}.
	ScopeNone Scope = iota
	// ScopeOwnerPath lists the owner's records: GET {base}{path}/owner/{id}.
	ScopeOwnerPath
)

// Resource is one REST collection of the résumé backend.
type Resource struct {
	Path    string // e.g. "/experiencias"
	Scope   Scope
	OwnerID string
}

// Client is a JSON client for the résumé REST backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) collectionURL(res Resource) string {
	return c.baseURL + res.Path
}

func (c *Client) listURL(res Resource) string {
	if res.Scope == ScopeOwnerPath {
		return c.collectionURL(res) + "/owner/" + url.PathEscape(res.OwnerID)
	}
	return c.collectionURL(res)
}

func (c *Client) itemURL(res Resource, id string) string {
	return c.collectionURL(res) + "/" + url.PathEscape(id)
}

// List fetches the collection and decodes the JSON array into out.
func (c *Client) List(ctx context.Context, res Resource, out any) error {
	body, err := c.do(ctx, OpList, http.MethodGet, c.listURL(res), nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: OpList, Status: http.StatusOK, Kind: KindDecode, Err: fmt.Errorf("decoding %s: %w", res.Path, err)}
	}
	return nil
}

// Create POSTs body to the collection.
func (c *Client) Create(ctx context.Context, res Resource, body any) error {
	_, err := c.do(ctx, OpCreate, http.MethodPost, c.collectionURL(res), body)
	return err
}

// Update PUTs body as a full replacement of record id.
func (c *Client) Update(ctx context.Context, res Resource, id string, body any) error {
	_, err := c.do(ctx, OpUpdate, http.MethodPut, c.itemURL(res, id), body)
	return err
}

// Delete removes record id. 204 and any other 2xx count as success.
func (c *Client) Delete(ctx context.Context, res Resource, id string) error {
	_, err := c.do(ctx, OpDelete, http.MethodDelete, c.itemURL(res, id), nil)
	return err
}

// do issues one request and returns the body of a 2xx response. Any other
// outcome is an *Error.
func (c *Client) do(ctx context.Context, op Op, method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "url", endpoint, "err", err)
		return nil, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	resp.Body.Close()
	c.logger.Debug("request", "method", method, "url", endpoint, "status", resp.StatusCode)
	if err != nil {
		return nil, &Error{Op: op, Status: resp.StatusCode, Kind: KindTransport, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(op, resp.StatusCode, body)
	}
	return body, nil
}
