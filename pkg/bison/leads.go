package bison

import (
	"context"
	"strconv"
)

func (c *Client) CampaignLeads(ctx context.Context, campaignID int64, filters map[string]any) (*List[Lead], error) {
	return collect[Lead](ctx, c, "/api/campaigns/"+strconv.FormatInt(campaignID, 10)+"/leads", filters)
}

func (c *Client) AttachLeads(ctx context.Context, campaignID int64, leadIDs []int64, parallel bool) (any, error) {
	return c.raw(ctx, &Request{
		Method: "POST",
		Path:   "/api/campaigns/" + strconv.FormatInt(campaignID, 10) + "/leads/attach-leads",
		Body: map[string]any{
			"lead_ids":               leadIDs,
			"allow_parallel_sending": parallel,
		},
	})
}

func (c *Client) AttachLeadList(ctx context.Context, campaignID, listID int64, parallel bool) (any, error) {
	return c.raw(ctx, &Request{
		Method: "POST",
		Path:   "/api/campaigns/" + strconv.FormatInt(campaignID, 10) + "/leads/attach-lead-list",
		Body: map[string]any{
			"lead_list_id":           listID,
			"allow_parallel_sending": parallel,
		},
	})
}

func (c *Client) StopFutureEmails(ctx context.Context, campaignID int64, leadIDs []int64) (any, error) {
	return c.raw(ctx, &Request{
		Method: "POST",
		Path:   "/api/campaigns/" + strconv.FormatInt(campaignID, 10) + "/leads/stop-future-emails",
		Body: map[string]any{
			"lead_ids": leadIDs,
		},
	})
}
