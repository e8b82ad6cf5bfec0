package bison

import (
	"context"
	"errors"
)

// fallback runs each candidate in order until one succeeds. It stops early on
// cancellation and otherwise returns the last error observed.
func (c *Client) fallback(ctx context.Context, name string, candidates ...func() error) error {
	var err error

	for i, candidate := range candidates {
		if err = candidate(); err == nil {
			return nil
		}

		if ctx.Err() != nil || isCanceled(err) {
			return err
		}

		if i < len(candidates)-1 {
			c.log().Debug("falling back", "operation", name, "candidate", i+1, "error", err)
		}
	}

	return err
}

func isCanceled(err error) bool {
	var e *Error

	if errors.As(err, &e) {
		return e.Kind == ErrorKindCanceled
	}

	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
