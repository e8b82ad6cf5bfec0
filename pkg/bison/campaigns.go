package bison

import (
	"context"
	"strconv"
)

type CampaignListOptions struct {
	Status string
	TagIDs []int64
}

func (c *Client) Campaigns(ctx context.Context, options *CampaignListOptions) (*List[Campaign], error) {
	if options == nil {
		options = new(CampaignListOptions)
	}

	query := map[string]any{}

	if options.Status != "" {
		query["status"] = options.Status
	}

	if len(options.TagIDs) > 0 {
		query["tag_ids"] = options.TagIDs
	}

	return collect[Campaign](ctx, c, "/api/campaigns", query)
}

func (c *Client) Campaign(ctx context.Context, id int64) (*Campaign, error) {
	var result envelope[Campaign]

	if err := c.get(ctx, "/api/campaigns/"+strconv.FormatInt(id, 10), nil, &result); err != nil {
		return nil, err
	}

	return &result.Data, nil
}

func (c *Client) CreateCampaign(ctx context.Context, name, kind string, extra map[string]any) (any, error) {
	body := map[string]any{}

	for k, v := range extra {
		body[k] = v
	}

	if kind == "" {
		kind = "outbound"
	}

	body["name"] = name
	body["type"] = kind

	return c.raw(ctx, &Request{
		Method: "POST",
		Path:   "/api/campaigns",
		Body:   body,
	})
}
