package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/adrianliechti/emailbison-mcp/pkg/tool"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	impl *mcp.Implementation
	opts *mcp.ServerOptions

	logger *slog.Logger

	tools []tool.Provider
}

type Option func(*Server)

func WithVersion(version string) Option {
	return func(s *Server) {
		s.impl.Version = version
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithInstructions(instructions string) Option {
	return func(s *Server) {
		s.opts.Instructions = instructions
	}
}

func New(name string, tools []tool.Provider, options ...Option) (*Server, error) {
	s := &Server{
		impl: &mcp.Implementation{
			Name: name,
		},

		opts: &mcp.ServerOptions{
			KeepAlive: time.Second * 30,
		},

		logger: slog.Default(),

		tools: tools,
	}

	for _, option := range options {
		option(s)
	}

	return s, nil
}

// Server registers every tool of every provider with a new MCP server.
// Arguments are validated against the tool schema before the provider runs.
func (s *Server) Server(ctx context.Context) (*mcp.Server, error) {
	server := mcp.NewServer(s.impl, s.opts)

	for _, p := range s.tools {
		tools, err := p.Tools(ctx)

		if err != nil {
			return nil, err
		}

		for _, t := range tools {
			schema, err := parseSchema(t.Parameters)

			if err != nil {
				return nil, fmt.Errorf("tool %s: %w", t.Name, err)
			}

			resolved, err := schema.Resolve(nil)

			if err != nil {
				return nil, fmt.Errorf("tool %s: %w", t.Name, err)
			}

			server.AddTool(&mcp.Tool{
				Name:        t.Name,
				Description: t.Description,

				InputSchema: schema,
			}, s.handler(p, t.Name, resolved))
		}
	}

	return server, nil
}

func (s *Server) handler(p tool.Provider, name string, schema *jsonschema.Resolved) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]any{}

		if r := req.Params.Arguments; len(r) > 0 && string(r) != "null" {
			if err := json.Unmarshal(r, &args); err != nil {
				return failure(&tool.ArgumentError{Message: "arguments must be a JSON object"}), nil
			}
		}

		if err := schema.Validate(args); err != nil {
			s.logger.Warn("invalid tool arguments", "tool", name, "error", err)
			return failure(&tool.ArgumentError{Message: err.Error()}), nil
		}

		result, err := p.Execute(ctx, name, args)

		if err != nil {
			s.logger.Error("tool failed", "tool", name, "error", err)
			return failure(err), nil
		}

		return success(result), nil
	}
}

// Run serves the tools over stdio until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.RunTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	server, err := s.Server(ctx)

	if err != nil {
		return err
	}

	err = server.Run(ctx, t)

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// Handler serves the tools over stateless streamable HTTP.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	server, err := s.Server(ctx)

	if err != nil {
		return nil, err
	}

	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	}), nil
}

func parseSchema(parameters map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(tool.NormalizeSchema(maps.Clone(parameters)))

	if err != nil {
		return nil, err
	}

	schema := new(jsonschema.Schema)

	if err := schema.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return schema, nil
}

func success(result any) *mcp.CallToolResult {
	switch v := result.(type) {
	case *mcp.CallToolResult:
		return v

	case string:
		return text(v, false)

	default:
		data, err := json.MarshalIndent(v, "", "  ")

		if err != nil {
			return failure(err)
		}

		return text(string(data), false)
	}
}

func failure(err error) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(tool.NewFailure(err), "", "  ")
	return text(string(data), true)
}

func text(s string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: s,
			},
		},

		IsError: isError,
	}
}
