// Package rest holds the HTTP clients of the collaborating services: the inventory
// ledger, the scheduling service and masterdata. Every client speaks JSON, honours the
// caller's context and maps the collaborator's status codes onto the errs package.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"factory/internal/pkg/errs"
	"factory/internal/pkg/metrics"
)

const maxErrorBody = 4 << 10

// StatusError is returned for non 2xx responses that have no better mapping.
type StatusError struct {
	Target string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded %d: %s", e.Target, e.Code, e.Body)
}

// NewHTTPClient builds the shared client of all collaborators.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

type client struct {
	baseURL string
	target  string
	http    *http.Client
	logger  *zap.Logger
}

func newClient(baseURL, target string, httpClient *http.Client, logger *zap.Logger) client {
	return client{
		baseURL: strings.TrimRight(baseURL, "/"),
		target:  target,
		http:    httpClient,
		logger:  logger.With(zap.String("component", target+"-client")),
	}
}

// do sends body as JSON and decodes a 2xx response into out when out is not nil.
func (c client) do(ctx context.Context, method, path string, body, out any) (err error) {
	started := time.Now()
	defer func() {
		metrics.RecordDownstreamCall(c.target, err, time.Since(started))
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", c.target, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s %s: %w", c.target, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("unexpected response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return c.statusError(path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", c.target, err)
	}
	return nil
}

func (c client) statusError(path string, code int, body string) error {
	cause := &StatusError{Target: c.target, Code: code, Body: body}
	switch code {
	case http.StatusNotFound:
		return errs.NewObjectNotFoundErrorWithCause(c.target+" resource", path, cause)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errs.NewValueIsInvalidErrorWithCause(c.target+" request", cause)
	default:
		return cause
	}
}
