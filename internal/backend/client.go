// Package backend holds thin HTTP clients for the platform services the
// gateway fronts. Calls attach the session's bearer credential when present
// and run with no client-side deadline or retry; upstream services own their
// own availability semantics.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/spec-kit/storefront-gateway/internal/observability"
	"github.com/spec-kit/storefront-gateway/pkg/util"
)

const maxErrorBody = 4 << 10

type client struct {
	service string
	baseURL string
	http    *http.Client
	metrics *observability.Metrics
}

func newClient(service, baseURL string, metrics *observability.Metrics) client {
	return client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		metrics: metrics,
	}
}

// doJSON issues a request against the service. body and out may be nil; a
// non-2xx response is mapped to a DomainError carrying the upstream verdict.
func (c *client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(c.service, 0)
		return util.NewUpstreamError(c.service, 0, "")
	}
	defer func() { _ = resp.Body.Close() }()

	c.metrics.RecordUpstream(c.service, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return util.NewUpstreamError(c.service, resp.StatusCode, upstreamMessage(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return util.NewUpstreamError(c.service, resp.StatusCode, "invalid response body")
	}
	return nil
}

// upstreamMessage extracts a human-readable message from an error response,
// accepting either {"message": ...} JSON or a plain-text body.
func upstreamMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(raw))
}
