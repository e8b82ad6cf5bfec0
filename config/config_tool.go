package config

import (
	"net/http"

	"github.com/adrianliechti/emailbison-mcp/pkg/bison"
	"github.com/adrianliechti/emailbison-mcp/pkg/limiter"
	"github.com/adrianliechti/emailbison-mcp/pkg/mcp"
	"github.com/adrianliechti/emailbison-mcp/pkg/otel"
	"github.com/adrianliechti/emailbison-mcp/pkg/tool"

	bisontool "github.com/adrianliechti/emailbison-mcp/pkg/tool/bison"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const ServerName = "email-bison"

func (cfg *Config) Client(version string) (*bison.Client, error) {
	options := []bison.Option{
		bison.WithUserAgent("emailbison-mcp/" + version),
		bison.WithRetry(cfg.Tuning.RetryPolicy()),
		bison.WithExcerptBytes(cfg.Tuning.ExcerptBytes),
		bison.WithMaxPages(cfg.Tuning.MaxPages),
	}

	if cfg.Logger != nil {
		options = append(options, bison.WithLogger(cfg.Logger))
	}

	if cfg.Tuning.Timeout > 0 {
		options = append(options, bison.WithClient(&http.Client{
			Timeout:   cfg.Tuning.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}))
	}

	return bison.New(cfg.BaseURL, cfg.APIKey, options...)
}

// Tools returns the EmailBison tool catalog, traced and rate limited.
func (cfg *Config) Tools(version string) ([]tool.Provider, error) {
	client, err := cfg.Client(version)

	if err != nil {
		return nil, err
	}

	var p tool.Provider

	p, err = bisontool.New(client,
		bisontool.WithFanout(cfg.Tuning.Fanout),
		bisontool.WithOutputLimit(cfg.Tuning.OutputBytes),
	)

	if err != nil {
		return nil, err
	}

	if l := limiter.New(cfg.Tuning.RateLimit, cfg.Tuning.RateBurst); l != nil {
		p = limiter.NewTool(l, p)
	}

	p = otel.NewTool(ServerName, p)

	return []tool.Provider{p}, nil
}

func (cfg *Config) Server(version string) (*mcp.Server, error) {
	tools, err := cfg.Tools(version)

	if err != nil {
		return nil, err
	}

	options := []mcp.Option{
		mcp.WithVersion(version),
	}

	if cfg.Logger != nil {
		options = append(options, mcp.WithLogger(cfg.Logger))
	}

	if cfg.Degraded {
		options = append(options, mcp.WithInstructions(KeyAPIKey+" is not configured. Authenticated EmailBison endpoints will reject requests until it is set."))
	}

	return mcp.New(ServerName, tools, options...)
}
