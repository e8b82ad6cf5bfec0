package limiter

import (
	"context"

	"github.com/adrianliechti/emailbison-mcp/pkg/tool"

	"golang.org/x/time/rate"
)

type Tool interface {
	Limiter
	tool.Provider
}

type limitedTool struct {
	limiter  *rate.Limiter
	provider tool.Provider
}

func NewTool(l *rate.Limiter, p tool.Provider) Tool {
	return &limitedTool{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedTool) limiterSetup() {
}

func (p *limitedTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	return p.provider.Tools(ctx)
}

func (p *limitedTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Execute(ctx, name, parameters)
}
