package bison

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Request struct {
	Method string
	Path   string

	Query map[string]any
	Body  any
}

// Do performs one logical API call, retrying transport failures and
// retryable statuses according to the client's policy. The returned response
// is never nil; the error, if any, is the response's *Error.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	resp := c.do(ctx, r)

	if resp.Err != nil {
		return resp, resp.Err
	}

	return resp, nil
}

func (c *Client) do(ctx context.Context, r *Request) *Response {
	id := uuid.NewString()

	method := strings.ToUpper(strings.TrimSpace(r.Method))

	if method == "" {
		method = http.MethodGet
	}

	target := c.url + "/" + strings.TrimLeft(r.Path, "/")

	if len(r.Query) > 0 {
		if q := EncodeQuery(r.Query).Encode(); q != "" {
			target += "?" + q
		}
	}

	var body []byte

	if r.Body != nil {
		data, err := json.Marshal(r.Body)

		if err != nil {
			return failed(id, &Error{
				Kind:    ErrorKindClient,
				Method:  method,
				URL:     target,
				Message: "invalid request body: " + err.Error(),
			})
		}

		body = data
	}

	var slept time.Duration

	b := c.retry.backOff()

	for attempt := 1; ; attempt++ {
		resp, err := c.send(ctx, id, method, target, body)

		resp.ID = id
		resp.Attempts = attempt

		if err == nil {
			resp.Outcome = OutcomeSuccess
			return resp
		}

		err.Attempts = attempt

		if !err.Retryable() || attempt > c.retry.MaxRetries {
			return c.terminal(resp, err)
		}

		delay := b.NextBackOff()

		if c.retry.MaxElapsed > 0 && slept+delay > c.retry.MaxElapsed {
			c.log().Warn("retry budget exhausted", "id", id, "method", method, "url", target, "attempt", attempt, "slept", slept)
			return c.terminal(resp, err)
		}

		c.log().Warn("retrying request", "id", id, "method", method, "url", target, "attempt", attempt, "status", err.Status, "kind", err.Kind, "delay", delay)

		if c.retries != nil {
			c.retries.Add(ctx, 1, metric.WithAttributes(
				attribute.String("method", method),
				attribute.Int("status", err.Status),
			))
		}

		if serr := c.sleep(ctx, delay); serr != nil {
			err.Kind = ErrorKindCanceled
			err.Message = serr.Error()

			return c.terminal(resp, err)
		}

		slept += delay
	}
}

func (c *Client) send(ctx context.Context, id, method, url string, body []byte) (*Response, *Error) {
	var reader io.Reader

	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)

	if err != nil {
		return &Response{}, &Error{
			Kind:    ErrorKindClient,
			Method:  method,
			URL:     url,
			Message: err.Error(),
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.agent)
	req.Header.Set("X-Request-Id", id)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log().Debug("sending request", "id", id, "method", method, "url", url)

	resp, err := c.client.Do(req)

	if err != nil {
		kind := ErrorKindTransient

		if ctx.Err() != nil {
			kind = ErrorKindCanceled
		}

		return &Response{}, &Error{
			Kind:    kind,
			Method:  method,
			URL:     url,
			Message: err.Error(),
		}
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if err != nil {
		kind := ErrorKindTransient

		if ctx.Err() != nil {
			kind = ErrorKindCanceled
		}

		return &Response{Status: resp.StatusCode}, &Error{
			Kind:    kind,
			Status:  resp.StatusCode,
			Method:  method,
			URL:     url,
			Message: "read body: " + err.Error(),
		}
	}

	contentType := resp.Header.Get("Content-Type")

	c.log().Debug("received response", "id", id, "status", resp.StatusCode, "content_type", contentType, "bytes", len(data))

	return classify(method, url, resp.StatusCode, contentType, data, c.excerpt)
}

func (c *Client) terminal(resp *Response, err *Error) *Response {
	resp.Outcome = OutcomeTerminalFailure
	resp.Err = err

	if resp.Excerpt == "" {
		resp.Excerpt = err.Excerpt
	}

	args := []any{"id", resp.ID, "method", err.Method, "url", err.URL, "status", err.Status, "kind", err.Kind, "attempts", err.Attempts}

	if err.Message != "" {
		args = append(args, "message", err.Message)
	}

	if len(err.Fields) > 0 {
		args = append(args, "fields", err.Fields)
	}

	if err.Excerpt != "" {
		args = append(args, "excerpt", err.Excerpt)
	}

	c.log().Error("request failed", args...)

	return resp
}

func failed(id string, err *Error) *Response {
	return &Response{
		ID:      id,
		Outcome: OutcomeTerminalFailure,
		Err:     err,
	}
}
