package bison

import (
	"context"
	"slices"
	"strings"

	"github.com/adrianliechti/emailbison-mcp/pkg/bison"
	"github.com/adrianliechti/emailbison-mcp/pkg/tool"
)

var rawMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "HEAD", "OPTIONS"}

type rawArgs struct {
	Method string `json:"method"`
	Path   string `json:"path"`

	Params map[string]any `json:"params"`
	Body   any            `json:"body"`
}

func (a *rawArgs) validate() error {
	a.Method = strings.ToUpper(strings.TrimSpace(a.Method))

	if !slices.Contains(rawMethods, a.Method) {
		return tool.InvalidArgument("method", "must be one of %s", strings.Join(rawMethods, ", "))
	}

	if !strings.HasPrefix(a.Path, "/") || strings.HasPrefix(a.Path, "//") {
		return tool.InvalidArgument("path", "must be an absolute API path such as /api/campaigns")
	}

	if strings.ContainsAny(a.Path, "?#") {
		return tool.InvalidArgument("path", "must not contain a query string, use params instead")
	}

	return nil
}

func (c *Client) rawRequest() descriptor {
	schema := object([]string{"method", "path"}, map[string]any{
		"method": str("HTTP method", rawMethods...),
		"path":   str("API path relative to the base URL, e.g. /api/campaigns"),
		"params": prop("object", "Query parameters; lists and objects use bracket notation", map[string]any{
			"additionalProperties": true,
		}),
		"body": map[string]any{
			"description": "JSON request body",
		},
	})

	return newTool("raw_request", "Send an arbitrary request to the EmailBison API and return the decoded response.", schema,
		func(ctx context.Context, args rawArgs) (any, error) {
			resp, err := c.client.Do(ctx, &bison.Request{
				Method: args.Method,
				Path:   args.Path,

				Query: args.Params,
				Body:  args.Body,
			})

			if err != nil {
				return nil, err
			}

			return c.capped(resp.Body)
		})
}
