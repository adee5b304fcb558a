package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/pkg/config"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

// Client is a typed HTTP client for the external CT Supera REST API. All
// persistence and authorization live behind it; this tier only orchestrates
// requests and relays errors.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	observe func(method string, status int, duration time.Duration)
}

// NewClient constructs a Client from configuration.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := strings.TrimRight(cfg.BaseURL, "/") + "/"
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// SetObserver installs a hook called once per request with the method, the
// response status (0 on transport failure) and the elapsed time.
func (c *Client) SetObserver(fn func(method string, status int, duration time.Duration)) {
	c.observe = fn
}

// upstreamError is the error body shape returned by the API.
type upstreamError struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (e upstreamError) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

// do performs a request against path (relative to the base URL, or absolute
// when following pagination cursors). A non-empty token is forwarded using
// the API's token scheme. Non-2xx responses are mapped to ErrUpstream clones
// carrying the server-provided message verbatim when present.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	url := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		url = c.baseURL + strings.TrimLeft(path, "/")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observe != nil {
			c.observe(method, 0, time.Since(start))
		}
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	if c.observe != nil {
		c.observe(method, resp.StatusCode, time.Since(start))
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to read upstream response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(method, url, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected upstream response")
		}
	}
	return nil
}

func (c *Client) errorFromResponse(method, url string, status int, raw []byte) error {
	var body upstreamError
	_ = json.Unmarshal(raw, &body)

	message := body.message()
	if message == "" {
		message = appErrors.ErrUpstream.Message
	}

	c.logger.Warn("upstream request failed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", status),
	)

	err := appErrors.Clone(appErrors.ErrUpstream, message)
	err.Status = status
	return err
}

func (c *Client) get(ctx context.Context, path, token string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) put(ctx context.Context, path, token string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, token, body, out)
}

func (c *Client) patch(ctx context.Context, path, token string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, token, body, out)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

func queryInt(key string, value int) string {
	if value <= 0 {
		return ""
	}
	return fmt.Sprintf("%s=%d", key, value)
}

func withQuery(path string, params ...string) string {
	filtered := params[:0]
	for _, p := range params {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return path
	}
	return path + "?" + strings.Join(filtered, "&")
}
