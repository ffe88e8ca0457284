// Package supabase is a thin typed client over the hosted backend this
// application delegates persistence, authentication, and file storage to.
// It speaks three HTTP APIs of the same service: the PostgREST row API,
// the GoTrue auth API, and the storage API. Only the operations the
// application consumes are implemented.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured is returned by every operation when the client was
	// built without a URL/key pair. Callers treat it as a degraded feature,
	// not a crash.
	ErrNotConfigured = errors.New("supabase client is not configured")

	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// APIError carries the sanitized upstream failure for non-2xx responses
// that do not map to a sentinel error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: %d %s", e.Status, e.Message)
}

// Client talks to one project with one key. The privilege level is
// decided by the key: the anon key is subject to row-level security,
// the service-role key bypasses it.
type Client struct {
	url    string
	key    string
	client *http.Client
}

func New(url, key string) *Client {
	return &Client{
		url:    strings.TrimSuffix(url, "/"),
		key:    key,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the client holds credentials. Checked at call
// time so a misconfigured deployment degrades instead of crashing.
func (c *Client) Enabled() bool {
	return c.url != "" && c.key != ""
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)

	return req, nil
}

// do executes the request and decodes a 2xx body into dst when dst is
// non-nil. Non-2xx bodies are decoded into an APIError.
func (c *Client) do(req *http.Request, dst any) error {
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.decodeError(res)
	}

	if dst == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(dst)
}

func (c *Client) decodeError(res *http.Response) error {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &APIError{Status: res.StatusCode, Message: "unreadable error response"}
	}

	// GoTrue and PostgREST disagree on the field name for the message.
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Msg
	}
	if message == "" {
		message = payload.ErrorDescription
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	return &APIError{Status: res.StatusCode, Message: message}
}

func encodeBody(body any) (io.Reader, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, err
	}
	return buf, nil
}
