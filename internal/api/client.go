// Package api wraps the storefront's REST endpoints in small controllers that
// share one request channel per browser context.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// RequestChannel is the HTTP capability bound to one browser context.
// playwright.APIRequestContext satisfies it.
//
// A RequestChannel is NOT safe for concurrent use: callers issuing requests
// from several goroutines against one channel must expect failures.
type RequestChannel interface {
	Fetch(urlOrRequest interface{}, options ...playwright.APIRequestContextFetchOptions) (playwright.APIResponse, error)
}

// Envelope is the uniform result of every API call. Status is the transport
// status code; the storefront reports its own outcome inside Data as
// responseCode, which is usually 200 at transport level even for failures.
type Envelope struct {
	Status int
	Data   any
	Raw    []byte
}

// ResponseCode returns the application-level responseCode, or 0 when the body
// has none
func (e Envelope) ResponseCode() int {
	if code, ok := e.Field("responseCode").(float64); ok {
		return int(code)
	}
	return 0
}

// Message returns the body's message field, or an empty string
func (e Envelope) Message() string {
	msg, _ := e.Field("message").(string)
	return msg
}

// Field returns a top-level field of a JSON object body
func (e Envelope) Field(name string) any {
	obj, ok := e.Data.(map[string]any)
	if !ok {
		return nil
	}
	return obj[name]
}

// IsJSON reports whether the body decoded as JSON
func (e Envelope) IsJSON() bool {
	_, isText := e.Data.(string)
	return e.Data != nil && !isText
}

// Decode unmarshals the raw body into a typed view
func (e Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Raw, v); err != nil {
		return fmt.Errorf("failed to decode %d byte body: %w", len(e.Raw), err)
	}
	return nil
}

// Client issues requests against the API base URL through a shared channel.
// It never retries and never caches; every call is one round trip.
type Client struct {
	channel RequestChannel
	baseURL string
	logger  *zap.Logger
}

// NewClient creates a client for the given channel and API base URL
func NewClient(channel RequestChannel, baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		channel: channel,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET with optional query parameters
func (c *Client) Get(endpoint string, params map[string]string) (Envelope, error) {
	opts := jsonOptions(http.MethodGet)
	if len(params) > 0 {
		opts.Params = toAnyMap(params)
	}
	return c.do(endpoint, opts)
}

// Post issues a POST with an optional JSON body
func (c *Client) Post(endpoint string, body any) (Envelope, error) {
	opts := jsonOptions(http.MethodPost)
	if body != nil {
		opts.Data = body
	}
	return c.do(endpoint, opts)
}

// PostForm issues a form-encoded POST
func (c *Client) PostForm(endpoint string, form map[string]string) (Envelope, error) {
	return c.do(endpoint, formOptions(http.MethodPost, form))
}

// Put issues a PUT with an optional JSON body
func (c *Client) Put(endpoint string, body any) (Envelope, error) {
	opts := jsonOptions(http.MethodPut)
	if body != nil {
		opts.Data = body
	}
	return c.do(endpoint, opts)
}

// PutForm issues a form-encoded PUT
func (c *Client) PutForm(endpoint string, form map[string]string) (Envelope, error) {
	return c.do(endpoint, formOptions(http.MethodPut, form))
}

// Delete issues a form-encoded DELETE
func (c *Client) Delete(endpoint string, form map[string]string) (Envelope, error) {
	return c.do(endpoint, formOptions(http.MethodDelete, form))
}

func (c *Client) do(endpoint string, opts playwright.APIRequestContextFetchOptions) (Envelope, error) {
	url := c.baseURL + endpoint
	method := *opts.Method

	resp, err := c.channel.Fetch(url, opts)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Dispose()

	env := Envelope{Status: resp.Status()}
	body, err := resp.Body()
	if err != nil {
		// A response arrived but its body could not be read; keep the status
		c.logger.Warn("failed to read response body",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err),
		)
		env.Data = ""
		return env, nil
	}
	env.Raw = body
	env.Data = parseBody(body)

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", env.Status),
		zap.Int("responseCode", env.ResponseCode()),
	)
	return env, nil
}

// parseBody decodes JSON and falls back to the raw text
func parseBody(body []byte) any {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}
	return data
}

func jsonOptions(method string) playwright.APIRequestContextFetchOptions {
	return playwright.APIRequestContextFetchOptions{
		Method: playwright.String(method),
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

func formOptions(method string, form map[string]string) playwright.APIRequestContextFetchOptions {
	opts := playwright.APIRequestContextFetchOptions{
		Method: playwright.String(method),
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"Accept":       "application/json",
		},
	}
	if form != nil {
		opts.Form = toAnyMap(form)
	}
	return opts
}

func toAnyMap(in map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
