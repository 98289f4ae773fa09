// Package api is a typed client for the Higuga REST API. The API itself is an
// external collaborator; this package only speaks its JSON/multipart contract,
// attaches auth material and maps failures onto stable sentinels.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/higuga/higuga/internal/errs"
	"github.com/higuga/higuga/internal/model"
)

// StatusError is a non-2xx API response. It unwraps to errs.ErrUnauthorized
// (401) or errs.ErrNotFound (404) so callers can branch with errors.Is.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return errs.ErrUnauthorized
	case http.StatusNotFound:
		return errs.ErrNotFound
	}
	return nil
}

// Client issues requests against one API base URL. It is safe for concurrent
// use. A bearer token and CSRF token, once set, ride along on every request;
// a 401 on an authenticated call triggers one transparent token refresh and
// re-issue of the original request, never more.
type Client struct {
	base  string
	httpc *http.Client
	log   *zap.Logger

	mu        sync.Mutex
	token     string
	userID    uuid.UUID
	csrf      string
	onRefresh func(model.User, string)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New constructs a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{Timeout: 30 * time.Second},
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetAuth installs the bearer token and the user it belongs to (the refresh
// endpoint is keyed by user id).
func (c *Client) SetAuth(token string, userID uuid.UUID) {
	c.mu.Lock()
	c.token, c.userID = token, userID
	c.mu.Unlock()
}

// ClearAuth drops bearer and CSRF tokens.
func (c *Client) ClearAuth() {
	c.mu.Lock()
	c.token, c.userID, c.csrf = "", uuid.Nil, ""
	c.mu.Unlock()
}

// OnRefresh registers a hook invoked with the new user and token after a
// successful transparent refresh, so the session store can re-persist them.
func (c *Client) OnRefresh(fn func(user model.User, token string)) {
	c.mu.Lock()
	c.onRefresh = fn
	c.mu.Unlock()
}

func (c *Client) auth() (token string, userID uuid.UUID, csrf string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.userID, c.csrf
}

// doJSON marshals body (when non-nil), sends it and decodes a 2xx response
// into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		payload = b
	}
	return c.do(ctx, method, path, query, "application/json", payload, out)
}

// doMultipart sends fields plus an optional file part named fileField.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, fileName string, file []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("api: multipart field %s: %w", k, err)
		}
	}
	if len(file) > 0 {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("api: multipart file: %w", err)
		}
		if _, err := part.Write(file); err != nil {
			return fmt.Errorf("api: multipart file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.do(ctx, method, path, nil, w.FormDataContentType(), buf.Bytes(), out)
}

// do sends the request, retrying exactly once after a successful token
// refresh when the first attempt came back 401 on an authenticated call.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte, out any) error {
	status, body, err := c.send(ctx, method, path, query, contentType, payload)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		token, userID, _ := c.auth()
		if token != "" && userID != uuid.Nil && path != pathRefresh {
			if rerr := c.refresh(ctx, userID); rerr != nil {
				return fmt.Errorf("api: token refresh: %w", errs.ErrUnauthorized)
			}
			status, body, err = c.send(ctx, method, path, query, contentType, payload)
			if err != nil {
				return err
			}
		}
	}

	if status < 200 || status > 299 {
		return &StatusError{Status: status, Message: errorMessage(body)}
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("api: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// send performs a single HTTP round trip and reads the whole body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte) (int, []byte, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	token, _, csrf := c.auth()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if csrf != "" {
		req.Header.Set("X-CSRF-Token", csrf)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("api: read %s %s: %w", method, path, err)
	}

	c.log.Info("api",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)
	return resp.StatusCode, body, nil
}

// refresh exchanges the user id for a fresh token and reports it upward.
func (c *Client) refresh(ctx context.Context, userID uuid.UUID) error {
	payload, err := json.Marshal(map[string]string{"id": userID.String()})
	if err != nil {
		return err
	}
	status, body, err := c.send(ctx, http.MethodPost, pathRefresh, nil, "application/json", payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &StatusError{Status: status, Message: errorMessage(body)}
	}
	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("api: decode refresh: %w", err)
	}

	c.mu.Lock()
	c.token = resp.Token
	fn := c.onRefresh
	c.mu.Unlock()
	if fn != nil {
		fn(resp.User, resp.Token)
	}
	return nil
}

// errorMessage pulls a human message out of an error body, tolerating the
// API's two shapes ({"message": ...} and {"error": ...}) and raw text.
func errorMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &m) == nil {
		if m.Message != "" {
			return m.Message
		}
		if m.Error != "" {
			return m.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// IsNotFound reports whether err maps to a missing entity.
func IsNotFound(err error) bool { return errors.Is(err, errs.ErrNotFound) }
