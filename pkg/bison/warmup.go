package bison

import (
	"context"
	"strconv"
)

func (c *Client) SenderEmails(ctx context.Context, filters map[string]any) (any, error) {
	return c.raw(ctx, &Request{
		Method: "GET",
		Path:   "/api/sender-emails",
		Query:  filters,
	})
}

func (c *Client) WarmupSenderEmails(ctx context.Context, filters map[string]any) (any, error) {
	return c.raw(ctx, &Request{
		Method: "GET",
		Path:   "/api/warmup/sender-emails",
		Query:  filters,
	})
}

func (c *Client) WarmupSenderEmail(ctx context.Context, id int64, start, end string) (any, error) {
	query := map[string]any{}

	if start != "" {
		query["start_date"] = start
	}

	if end != "" {
		query["end_date"] = end
	}

	return c.raw(ctx, &Request{
		Method: "GET",
		Path:   "/api/warmup/sender-emails/" + strconv.FormatInt(id, 10),
		Query:  query,
	})
}

func (c *Client) EnableWarmup(ctx context.Context, ids []int64) (any, error) {
	return c.raw(ctx, &Request{
		Method: "PATCH",
		Path:   "/api/warmup/sender-emails/enable",
		Body:   map[string]any{"sender_email_ids": ids},
	})
}

func (c *Client) DisableWarmup(ctx context.Context, ids []int64) (any, error) {
	return c.raw(ctx, &Request{
		Method: "PATCH",
		Path:   "/api/warmup/sender-emails/disable",
		Body:   map[string]any{"sender_email_ids": ids},
	})
}

func (c *Client) UpdateWarmupLimits(ctx context.Context, ids []int64, daily int64, dailyReply *int64) (any, error) {
	body := map[string]any{
		"sender_email_ids": ids,
		"daily_limit":      daily,
	}

	if dailyReply != nil {
		body["daily_reply_limit"] = *dailyReply
	}

	return c.raw(ctx, &Request{
		Method: "PATCH",
		Path:   "/api/warmup/sender-emails/update-daily-warmup-limits",
		Body:   body,
	})
}
