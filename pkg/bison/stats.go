package bison

import (
	"context"
	"strconv"
	"time"
)

func IsDate(s string) bool {
	if s == "" {
		return false
	}

	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// CampaignStats tries POST with a date body, then GET with a date query, then
// POST with an empty body. Dates that are not YYYY-MM-DD are dropped.
func (c *Client) CampaignStats(ctx context.Context, id int64, start, end string) (*CampaignStats, error) {
	path := "/api/campaigns/" + strconv.FormatInt(id, 10) + "/stats"

	dates := map[string]any{}

	if IsDate(start) {
		dates["start_date"] = start
	}

	if IsDate(end) {
		dates["end_date"] = end
	}

	var result envelope[CampaignStats]

	err := c.fallback(ctx, "campaign_stats",
		func() error {
			return c.call(ctx, &Request{Method: "POST", Path: path, Body: dates}, &result)
		},
		func() error {
			return c.call(ctx, &Request{Method: "GET", Path: path, Query: dates}, &result)
		},
		func() error {
			return c.call(ctx, &Request{Method: "POST", Path: path, Body: map[string]any{}}, &result)
		},
	)

	if err != nil {
		return nil, err
	}

	return &result.Data, nil
}

// SequenceSteps prefers the v1.1 endpoint and falls back to the legacy one.
func (c *Client) SequenceSteps(ctx context.Context, id int64) (*Sequence, error) {
	cid := strconv.FormatInt(id, 10)

	var result envelope[Sequence]

	err := c.fallback(ctx, "sequence_steps",
		func() error {
			return c.get(ctx, "/api/campaigns/v1.1/"+cid+"/sequence-steps", nil, &result)
		},
		func() error {
			return c.get(ctx, "/api/campaigns/"+cid+"/sequence-steps", nil, &result)
		},
	)

	if err != nil {
		return nil, err
	}

	return &result.Data, nil
}

type EventStatsOptions struct {
	Start string
	End   string

	SenderEmailIDs []int64
	CampaignIDs    []int64
}

func (c *Client) CampaignEventStats(ctx context.Context, options EventStatsOptions) (any, error) {
	query := map[string]any{
		"start_date": options.Start,
		"end_date":   options.End,
	}

	if len(options.SenderEmailIDs) > 0 {
		query["sender_email_ids"] = options.SenderEmailIDs
	}

	if len(options.CampaignIDs) > 0 {
		query["campaign_ids"] = options.CampaignIDs
	}

	return c.raw(ctx, &Request{
		Method: "GET",
		Path:   "/api/campaign-events/stats",
		Query:  query,
	})
}
