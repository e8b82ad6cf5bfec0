package bison

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/adrianliechti/emailbison-mcp/pkg/tool"
)

type descriptor struct {
	tool.Tool

	handler func(ctx context.Context, parameters map[string]any) (any, error)
}

type validator interface {
	validate() error
}

// newTool binds a typed handler to its name and schema. Arguments are decoded
// and validated before the handler runs.
func newTool[A any](name, description string, schema map[string]any, fn func(ctx context.Context, args A) (any, error)) descriptor {
	return descriptor{
		Tool: tool.Tool{
			Name:        name,
			Description: description,

			Parameters: schema,
		},

		handler: func(ctx context.Context, parameters map[string]any) (any, error) {
			var args A

			if err := tool.Decode(parameters, &args); err != nil {
				return nil, err
			}

			if v, ok := any(&args).(validator); ok {
				if err := v.validate(); err != nil {
					return nil, err
				}
			}

			return fn(ctx, args)
		},
	}
}

type empty struct{}

// capped returns v unchanged when its JSON encoding fits the output limit and
// a truncated JSON text otherwise.
func (c *Client) capped(v any) (any, error) {
	data, err := json.MarshalIndent(v, "", "  ")

	if err != nil {
		return nil, err
	}

	if len(data) <= c.limit {
		return v, nil
	}

	cut := c.limit

	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}

	var sb strings.Builder

	sb.Write(data[:cut])
	sb.WriteString("\n... truncated (")
	sb.WriteString(strconv.Itoa(len(data)))
	sb.WriteString(" bytes total)")

	return sb.String(), nil
}
