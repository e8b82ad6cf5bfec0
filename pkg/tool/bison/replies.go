package bison

import (
	"context"

	"github.com/adrianliechti/emailbison-mcp/pkg/bison"
	"github.com/adrianliechti/emailbison-mcp/pkg/text"
	"github.com/adrianliechti/emailbison-mcp/pkg/tool"
)

const (
	replySamples       = 20
	replyPreviewLength = 300
)

type repliesArgs struct {
	CampaignID int64 `json:"campaign_id"`

	StatusFilter string `json:"status_filter"`
	Folder       string `json:"folder"`
}

func (a *repliesArgs) validate() error {
	if err := positive("campaign_id", a.CampaignID); err != nil {
		return err
	}

	if !bison.ValidReplyStatus(a.StatusFilter) {
		return tool.InvalidArgument("status_filter", "unsupported value %q", a.StatusFilter)
	}

	if !bison.ValidFolder(a.Folder) {
		return tool.InvalidArgument("folder", "unsupported value %q", a.Folder)
	}

	return nil
}

func (a *repliesArgs) options() *bison.ReplyOptions {
	return &bison.ReplyOptions{
		Status: a.StatusFilter,
		Folder: a.Folder,
	}
}

func repliesSchema() map[string]any {
	return object([]string{"campaign_id"}, map[string]any{
		"campaign_id": integer("Campaign id"),
		"status_filter": str("Only include replies with this status",
			bison.ReplyStatusInterested,
			bison.ReplyStatusAutomated,
			bison.ReplyStatusNotAutomated,
		),
		"folder": str("Mailbox folder", "inbox", "sent", "spam", "bounced", "all"),
	})
}

type replySample struct {
	ID int64 `json:"id"`

	From    string `json:"from,omitempty"`
	Email   string `json:"email,omitempty"`
	Subject string `json:"subject,omitempty"`

	Interested bool   `json:"interested"`
	Preview    string `json:"preview"`
}

type replySummary struct {
	Total      int `json:"total"`
	Interested int `json:"interested"`
	Automated  int `json:"automated"`

	Samples []replySample `json:"samples"`
}

// summarizeReplies counts interested and automated replies and samples the
// first non-automated ones.
func summarizeReplies(replies []bison.Reply, samples, length int) *replySummary {
	s := &replySummary{
		Total:   len(replies),
		Samples: []replySample{},
	}

	for _, r := range replies {
		if r.Interested {
			s.Interested++
		}

		if r.AutomatedReply {
			s.Automated++
			continue
		}

		if len(s.Samples) < samples {
			s.Samples = append(s.Samples, replySample{
				ID: r.ID,

				From:    r.FromName,
				Email:   r.FromEmailAddress,
				Subject: r.Subject,

				Interested: bool(r.Interested),
				Preview:    text.Preview(r.TextBody, length),
			})
		}
	}

	return s
}

func (c *Client) analyzeReplies() descriptor {
	return newTool("analyze_replies", "Summarize the replies of a campaign with previews of up to 20 non-automated replies.", repliesSchema(),
		func(ctx context.Context, args repliesArgs) (any, error) {
			list, err := c.client.CampaignReplies(ctx, args.CampaignID, args.options())

			if err != nil {
				return nil, err
			}

			type result struct {
				CampaignID int64 `json:"campaign_id"`
				*replySummary
			}

			return result{
				CampaignID:   args.CampaignID,
				replySummary: summarizeReplies(list.Data, replySamples, replyPreviewLength),
			}, nil
		})
}

func (c *Client) dumpRepliesJSON() descriptor {
	return newTool("dump_replies_json", "Return the raw reply documents of a campaign as JSON.", repliesSchema(),
		func(ctx context.Context, args repliesArgs) (any, error) {
			list, err := c.client.CampaignReplies(ctx, args.CampaignID, args.options())

			if err != nil {
				return nil, err
			}

			return c.capped(list)
		})
}
