package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/adrianliechti/emailbison-mcp/pkg/tool"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type echoTool struct {
	calls int
}

func (t *echoTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{
		{
			Name:        "echo",
			Description: "echo the message",

			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"message": map[string]any{"type": "string"},
					"count":   map[string]any{"type": "integer", "minimum": 1},
				},
				"required": []string{"message"},
			},
		},
		{
			Name:        "fail",
			Description: "always fails",
		},
	}, nil
}

func (t *echoTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	t.calls++

	switch name {
	case "echo":
		return map[string]any{"message": parameters["message"]}, nil

	case "fail":
		return nil, errors.New("upstream unavailable")
	}

	return nil, tool.ErrInvalidTool
}

func connect(t *testing.T, p tool.Provider) *mcp.ClientSession {
	t.Helper()

	ctx := context.Background()

	s, err := New("email-bison", []tool.Provider{p}, WithVersion("test"))
	require.NoError(t, err)

	server, err := s.Server(ctx)
	require.NoError(t, err)

	st, ct := mcp.NewInMemoryTransports()

	ss, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test"}, nil)

	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() { cs.Close() })

	return cs
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestListTools(t *testing.T) {
	cs := connect(t, &echoTool{})

	result, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string

	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}

	require.ElementsMatch(t, []string{"echo", "fail"}, names)
}

func TestCallTool(t *testing.T) {
	p := &echoTool{}
	cs := connect(t, p)

	result, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"message": "hello"},
	})

	require.NoError(t, err)
	require.False(t, result.IsError)
	require.JSONEq(t, `{"message":"hello"}`, resultText(t, result))
	require.Equal(t, 1, p.calls)
}

func TestCallToolInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing required", map[string]any{}},
		{"wrong type", map[string]any{"message": 42}},
		{"below minimum", map[string]any{"message": "hi", "count": 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &echoTool{}
			cs := connect(t, p)

			result, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      "echo",
				Arguments: tc.args,
			})

			require.NoError(t, err)
			require.True(t, result.IsError)
			require.Zero(t, p.calls)

			var failure tool.Failure
			require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &failure))
			require.Contains(t, failure.Error, "invalid arguments")
		})
	}
}

func TestCallToolFailure(t *testing.T) {
	cs := connect(t, &echoTool{})

	result, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "fail",
	})

	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), "upstream unavailable")
}

func TestHandlerRawArguments(t *testing.T) {
	tests := []struct {
		name      string
		arguments string

		isError bool
		calls   int
	}{
		{"object", `{"message":"hi"}`, false, 1},
		{"not an object", `["hi"]`, true, 0},
		{"null", `null`, true, 0},
		{"missing", ``, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &echoTool{}

			s, err := New("email-bison", []tool.Provider{p})
			require.NoError(t, err)

			tools, err := p.Tools(context.Background())
			require.NoError(t, err)

			schema, err := parseSchema(tools[0].Parameters)
			require.NoError(t, err)

			resolved, err := schema.Resolve(nil)
			require.NoError(t, err)

			req := &mcp.CallToolRequest{
				Params: &mcp.CallToolParamsRaw{
					Name:      "echo",
					Arguments: json.RawMessage(tc.arguments),
				},
			}

			result, err := s.handler(p, "echo", resolved)(context.Background(), req)

			require.NoError(t, err)
			require.Equal(t, tc.isError, result.IsError)
			require.Equal(t, tc.calls, p.calls)
		})
	}
}
