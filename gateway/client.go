// Package gateway holds the HTTP clients for the remote marketplace API. Each
// call decodes into a single strict response schema; a shape mismatch is an
// error at the boundary, never a silent fallback.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrBadSchema 表示遠端回應不符合預期的格式
	ErrBadSchema = errors.New("response does not match expected schema")
	// ErrRemote 表示遠端服務回傳了非 2xx 狀態
	ErrRemote = errors.New("remote service error")
)

const defaultTimeout = 10 * time.Second

// Client is the shared transport for all boundary calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// do issues the request and decodes the body into out, which must carry its
// own schema check via the validatable interface.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("marketplace API returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %s %s returned %d", ErrRemote, method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrBadSchema, path, err)
	}

	if v, ok := out.(validatable); ok {
		if err = v.validateSchema(); err != nil {
			c.logger.Warn("marketplace API response failed schema check",
				zap.String("path", path),
				zap.Error(err))
			return err
		}
	}
	return nil
}

type validatable interface {
	validateSchema() error
}
