package bison

import (
	"context"
	"maps"
)

type List[T any] struct {
	Data []T `json:"data"`

	Total int `json:"total"`
	Pages int `json:"total_pages"`
}

type pageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

type page[T any] struct {
	Data []T      `json:"data"`
	Meta pageMeta `json:"meta"`
}

// collect follows meta.current_page / meta.last_page and merges every page.
func collect[T any](ctx context.Context, c *Client, path string, query map[string]any) (*List[T], error) {
	var first page[T]

	if err := c.get(ctx, path, query, &first); err != nil {
		return nil, err
	}

	data := first.Data

	last := max(first.Meta.LastPage, 1)
	current := max(first.Meta.CurrentPage, 1)

	if last > c.maxPages {
		c.log().Warn("truncating pagination", "path", path, "last_page", last, "max_pages", c.maxPages)
		last = c.maxPages
	}

	for n := current + 1; n <= last; n++ {
		q := maps.Clone(query)

		if q == nil {
			q = map[string]any{}
		}

		q["page"] = n

		var next page[T]

		if err := c.get(ctx, path, q, &next); err != nil {
			return nil, err
		}

		data = append(data, next.Data...)
	}

	if data == nil {
		data = []T{}
	}

	return &List[T]{
		Data: data,

		Total: len(data),
		Pages: last,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]any, v any) error {
	return c.call(ctx, &Request{Method: "GET", Path: path, Query: query}, v)
}

func (c *Client) call(ctx context.Context, r *Request, v any) error {
	resp, err := c.Do(ctx, r)

	if err != nil {
		return err
	}

	if v == nil {
		return nil
	}

	if err := resp.Decode(v); err != nil {
		return &Error{
			Kind:     ErrorKindMalformed,
			Status:   resp.Status,
			Method:   r.Method,
			URL:      c.url + r.Path,
			Message:  "unexpected response shape: " + err.Error(),
			Excerpt:  excerpt(resp.data, c.excerpt),
			Attempts: resp.Attempts,
		}
	}

	return nil
}

// raw returns the decoded JSON document of a call.
func (c *Client) raw(ctx context.Context, r *Request) (any, error) {
	resp, err := c.Do(ctx, r)

	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}
