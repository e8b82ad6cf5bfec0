package bison

import (
	"log/slog"
	"net/http"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUserAgent(val string) Option {
	return func(c *Client) {
		c.agent = val
	}
}

func WithRetry(policy RetryPolicy) Option {
	return func(c *Client) {
		c.retry = policy
	}
}

// WithExcerptBytes bounds the raw text surfaced for bodies that are not JSON.
func WithExcerptBytes(n int) Option {
	return func(c *Client) {
		c.excerpt = n
	}
}

func WithMaxPages(n int) Option {
	return func(c *Client) {
		c.maxPages = n
	}
}
