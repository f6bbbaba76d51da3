// Package api implements the generic resource client: JSON CRUD over the
// SPOS backend with bearer auth, the response envelope, and structured
// errors. No automatic retries; every retry is a user action.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/miromero13/spos-terminal/internal/apierror"
)

const defaultTimeout = 15 * time.Second

// Envelope is the uniform response body of the backend:
// {statusCode, message, error, data, countData}.
type Envelope struct {
	StatusCode int               `json:"statusCode"`
	Message    apierror.Messages `json:"message"`
	Err        string            `json:"error"`
	Data       json.RawMessage   `json:"data"`
	CountData  int64             `json:"countData"`
}

// Client is the authenticated HTTP resource client. A zero token makes the
// unauthenticated variant used for login-time calls.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

func NewClient(opts Options, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if opts.Token != "" {
		httpClient.SetAuthScheme("Bearer")
		httpClient.SetAuthToken(opts.Token)
	}
	return &Client{http: httpClient, log: logger.With().Str("component", "api").Logger()}
}

// SetToken attaches the bearer credential to every following call.
func (c *Client) SetToken(token string) {
	c.http.SetAuthScheme("Bearer")
	c.http.SetAuthToken(token)
}

// Token returns the current bearer credential, empty when unauthenticated.
func (c *Client) Token() string { return c.http.Token }

// Get fetches a single resource and decodes its data payload into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	return c.decode(resp, err, out, nil)
}

// List fetches a collection and returns the server-side total row count.
func (c *Client) List(ctx context.Context, path string, q Query, out interface{}) (int64, error) {
	resp, err := c.http.R().SetContext(ctx).SetQueryString(q.Encode()).Get(path)
	var count int64
	if err := c.decode(resp, err, out, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// Create posts a JSON body. Headers carry per-request extras such as the
// idempotency key. out may be nil when the caller ignores the data payload.
func (c *Client) Create(ctx context.Context, path string, body, out interface{}, headers map[string]string) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Post(path)
	return c.decode(resp, err, out, nil)
}

// CreateForm posts multipart form data, used by image-bearing resources.
// files maps form field name to a path on disk.
func (c *Client) CreateForm(ctx context.Context, path string, fields map[string]string, files map[string]string) error {
	req := c.http.R().SetContext(ctx).SetMultipartFormData(fields)
	for field, file := range files {
		req.SetFile(field, file)
	}
	resp, err := req.Post(path)
	return c.decode(resp, err, nil, nil)
}

// Update patches the resource identified by id.
func (c *Client) Update(ctx context.Context, path, id string, body interface{}) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Patch(join(path, id))
	return c.decode(resp, err, nil, nil)
}

// Remove deletes the resource identified by id.
func (c *Client) Remove(ctx context.Context, path, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete(join(path, id))
	return c.decode(resp, err, nil, nil)
}

// join appends an id to a trailing-slash endpoint, keeping the trailing slash.
func join(path, id string) string {
	return path + id + "/"
}

func (c *Client) decode(resp *resty.Response, err error, out interface{}, count *int64) error {
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	if resp.IsError() {
		apiErr := apierror.Decode(resp.StatusCode(), resp.Body())
		c.log.Warn().
			Int("status", resp.StatusCode()).
			Str("url", resp.Request.URL).
			Str("detail", apiErr.First("")).
			Msg("api call failed")
		return apiErr
	}

	var env Envelope
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			return fmt.Errorf("api response: %w", err)
		}
	}
	if count != nil {
		*count = env.CountData
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("api response data: %w", err)
		}
	}
	return nil
}
