package bison

import (
	"context"

	"github.com/adrianliechti/emailbison-mcp/pkg/tool"
)

func (c *Client) listEmailAccounts() descriptor {
	return newTool("list_email_accounts", "List the connected sender email accounts.", object(nil, map[string]any{}),
		func(ctx context.Context, args empty) (any, error) {
			data, err := c.client.SenderEmails(ctx, nil)

			if err != nil {
				return nil, err
			}

			return c.capped(data)
		})
}

func (c *Client) listWarmupAccounts() descriptor {
	return newTool("list_warmup_accounts", "List sender email accounts with their warmup status.", object(nil, map[string]any{}),
		func(ctx context.Context, args empty) (any, error) {
			data, err := c.client.WarmupSenderEmails(ctx, nil)

			if err != nil {
				return nil, err
			}

			return c.capped(data)
		})
}

type warmupDetailsArgs struct {
	SenderID int64 `json:"sender_id"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (a *warmupDetailsArgs) validate() error {
	if err := positive("sender_id", a.SenderID); err != nil {
		return err
	}

	if err := optionalDate("start_date", a.StartDate); err != nil {
		return err
	}

	return optionalDate("end_date", a.EndDate)
}

func (c *Client) warmupAccountDetails() descriptor {
	schema := object([]string{"sender_id"}, map[string]any{
		"sender_id":  integer("Sender email id"),
		"start_date": date("Start of the statistics window"),
		"end_date":   date("End of the statistics window"),
	})

	return newTool("warmup_account_details", "Warmup details and statistics of one sender email account.", schema,
		func(ctx context.Context, args warmupDetailsArgs) (any, error) {
			data, err := c.client.WarmupSenderEmail(ctx, args.SenderID, args.StartDate, args.EndDate)

			if err != nil {
				return nil, err
			}

			return c.capped(data)
		})
}

type sendersArgs struct {
	SenderIDs []int64 `json:"sender_ids"`
}

func (a *sendersArgs) validate() error {
	return positives("sender_ids", a.SenderIDs, true)
}

func sendersSchema() map[string]any {
	return object([]string{"sender_ids"}, map[string]any{
		"sender_ids": integers("Sender email ids"),
	})
}

func (c *Client) warmupEnable() descriptor {
	return newTool("warmup_enable", "Enable warmup for sender email accounts.", sendersSchema(),
		func(ctx context.Context, args sendersArgs) (any, error) {
			return c.client.EnableWarmup(ctx, args.SenderIDs)
		})
}

func (c *Client) warmupDisable() descriptor {
	return newTool("warmup_disable", "Disable warmup for sender email accounts.", sendersSchema(),
		func(ctx context.Context, args sendersArgs) (any, error) {
			return c.client.DisableWarmup(ctx, args.SenderIDs)
		})
}

type warmupLimitsArgs struct {
	SenderIDs []int64 `json:"sender_ids"`

	DailyLimit      int64  `json:"daily_limit"`
	DailyReplyLimit *int64 `json:"daily_reply_limit"`
}

func (a *warmupLimitsArgs) validate() error {
	if err := positives("sender_ids", a.SenderIDs, true); err != nil {
		return err
	}

	if err := positive("daily_limit", a.DailyLimit); err != nil {
		return err
	}

	if a.DailyReplyLimit != nil && *a.DailyReplyLimit < 0 {
		return tool.InvalidArgument("daily_reply_limit", "must not be negative")
	}

	return nil
}

func (c *Client) warmupUpdateLimits() descriptor {
	schema := object([]string{"sender_ids", "daily_limit"}, map[string]any{
		"sender_ids":        integers("Sender email ids"),
		"daily_limit":       integer("Warmup emails per day"),
		"daily_reply_limit": prop("integer", "Warmup replies per day", map[string]any{"minimum": 0}),
	})

	return newTool("warmup_update_limits", "Update the daily warmup limits of sender email accounts.", schema,
		func(ctx context.Context, args warmupLimitsArgs) (any, error) {
			return c.client.UpdateWarmupLimits(ctx, args.SenderIDs, args.DailyLimit, args.DailyReplyLimit)
		})
}
