package bison

import "time"

type Option func(*Client)

// WithFanout bounds the concurrent upstream calls of a composite tool.
func WithFanout(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.fanout = n
		}
	}
}

// WithOutputLimit caps the size of JSON dumps returned by tools.
func WithOutputLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}
