package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/adrianliechti/emailbison-mcp/pkg/tool"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type countingTool struct {
	calls int
}

func (t *countingTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{{Name: "noop"}}, nil
}

func (t *countingTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	t.calls++
	return name, nil
}

func TestToolWithoutLimiter(t *testing.T) {
	p := &countingTool{}
	l := NewTool(New(0, 0), p)

	for range 10 {
		_, err := l.Execute(context.Background(), "noop", nil)
		require.NoError(t, err)
	}

	require.Equal(t, 10, p.calls)
}

func TestToolWaitCanceled(t *testing.T) {
	p := &countingTool{}
	l := NewTool(rate.NewLimiter(rate.Every(time.Hour), 1), p)

	_, err := l.Execute(context.Background(), "noop", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = l.Execute(ctx, "noop", nil)
	require.Error(t, err)
	require.Equal(t, 1, p.calls)
}

func TestToolListsProviderTools(t *testing.T) {
	l := NewTool(nil, &countingTool{})

	tools, err := l.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
}
