package bison

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultURL = "https://send.highticket.agency"

	DefaultExcerptBytes = 2048
	DefaultMaxPages     = 50

	maxBodyBytes = 10 << 20
)

const instrumentationName = "github.com/adrianliechti/emailbison-mcp/pkg/bison"

type Client struct {
	url   string
	token string

	client *http.Client
	logger *slog.Logger

	agent string

	retry    RetryPolicy
	excerpt  int
	maxPages int

	sleep   func(ctx context.Context, d time.Duration) error
	retries metric.Int64Counter
}

func New(baseURL, token string, options ...Option) (*Client, error) {
	c := &Client{
		url:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token: strings.TrimSpace(token),

		client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},

		agent: "emailbison-mcp",

		retry:    DefaultRetryPolicy(),
		excerpt:  DefaultExcerptBytes,
		maxPages: DefaultMaxPages,

		sleep: sleep,
	}

	for _, option := range options {
		option(c)
	}

	if c.url == "" {
		c.url = DefaultURL
	}

	u, err := url.Parse(c.url)

	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("invalid base url: " + c.url)
	}

	if c.excerpt <= 0 {
		c.excerpt = DefaultExcerptBytes
	}

	if c.maxPages <= 0 {
		c.maxPages = DefaultMaxPages
	}

	c.retries, _ = otel.Meter(instrumentationName).Int64Counter("emailbison.client.retries",
		metric.WithDescription("Number of retried upstream requests"),
	)

	return c, nil
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}

	return slog.Default()
}
