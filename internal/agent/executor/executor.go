// Package executor performs single bounded HTTP calls against agent
// destinations. It attaches tracing headers, enforces per-call timeouts and
// converts every failure mode into a typed outcome.
//
// No retries happen at this layer; retry orchestration belongs to the caller,
// keyed off the destination's configured retry budget.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	apperrors "github.com/impactrealty/backoffice/internal/errors"
)

// Header names attached to every outbound call.
const (
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderAgentID       = "X-Agent-ID"
)

// maxErrorBodyBytes bounds how much of a failure response body is carried on a
// StatusError.
const maxErrorBodyBytes = 4096

// Executor issues bounded HTTP calls. The underlying client carries no global
// timeout; each call gets its own independent context deadline so that
// per-destination timeouts hold even with many calls in flight.
type Executor struct {
	client      *http.Client
	bearerToken string
}

// New creates an executor using the given bearer credential for outbound calls.
func New(bearerToken string) *Executor {
	return NewWithClient(bearerToken, &http.Client{})
}

// NewWithClient creates an executor with a custom HTTP client, used in tests.
func NewWithClient(bearerToken string, client *http.Client) *Executor {
	return &Executor{
		client:      client,
		bearerToken: bearerToken,
	}
}

// Post sends the JSON-encoded payload to the given address and decodes the
// response body. The payload is augmented with an ISO-8601 issued_at timestamp.
// Failures map to ErrExecutionTimeout, ErrTransport or StatusError.
func (e *Executor) Post(
	ctx context.Context,
	address, destination, correlationID string,
	payload agentDomain.Payload,
	timeout time.Duration,
) (agentDomain.Payload, error) {
	body, err := encodeBody(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, address, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build request")
	}
	e.setHeaders(req, destination, correlationID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(resp)
	}

	return decodeBody(resp.Body)
}

// Get performs a GET against the given URL with the standard tracing headers
// and decodes the JSON response. Used for status and execution-tracking
// endpoints.
func (e *Executor) Get(
	ctx context.Context,
	url, destination, correlationID string,
	timeout time.Duration,
) (agentDomain.Payload, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build request")
	}
	e.setHeaders(req, destination, correlationID)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(resp)
	}

	return decodeBody(resp.Body)
}

// PostStream sends the payload and exposes the raw response body as a
// lazily-consumed, non-restartable byte stream. Closing the returned reader
// cancels the in-flight call, so the caller must always close it.
func (e *Executor) PostStream(
	ctx context.Context,
	address, destination, correlationID string,
	payload agentDomain.Payload,
	timeout time.Duration,
) (io.ReadCloser, error) {
	body, err := encodeBody(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, address, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, apperrors.Wrap(err, "failed to build request")
	}
	e.setHeaders(req, destination, correlationID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		defer cancel()
		return nil, classifyTransportError(ctx, err)
	}

	if !isSuccess(resp.StatusCode) {
		err := statusError(resp)
		_ = resp.Body.Close()
		cancel()
		return nil, err
	}

	return &cancelReadCloser{body: resp.Body, cancel: cancel}, nil
}

// setHeaders attaches the correlation id, destination identifier and bearer
// credential to an outbound request.
func (e *Executor) setHeaders(req *http.Request, destination, correlationID string) {
	req.Header.Set(HeaderCorrelationID, correlationID)
	req.Header.Set(HeaderAgentID, destination)
	if e.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.bearerToken)
	}
}

// encodeBody serializes the payload plus an ISO-8601 issued_at timestamp.
func encodeBody(payload agentDomain.Payload) ([]byte, error) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["issued_at"] = time.Now().UTC().Format(time.RFC3339)

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode payload")
	}
	return encoded, nil
}

// decodeBody parses a JSON response body into a payload. An empty body decodes
// to an empty payload.
func decodeBody(r io.Reader) (agentDomain.Payload, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(agentDomain.ErrTransport, err.Error())
	}
	if len(raw) == 0 {
		return agentDomain.Payload{}, nil
	}

	var payload agentDomain.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode response body")
	}
	return payload, nil
}

// classifyTransportError distinguishes an exceeded per-call deadline from
// connection-level failures.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(agentDomain.ErrExecutionTimeout, err.Error())
	}
	return apperrors.Wrap(agentDomain.ErrTransport, err.Error())
}

// statusError builds a StatusError carrying the status code and a bounded
// prefix of the response body.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &agentDomain.StatusError{
		Code: resp.StatusCode,
		Body: string(raw),
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// cancelReadCloser ties the per-call context to the response body lifetime.
type cancelReadCloser struct {
	body   io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Read(p []byte) (int, error) {
	return c.body.Read(p)
}

func (c *cancelReadCloser) Close() error {
	err := c.body.Close()
	c.cancel()
	return err
}
