package bison

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/adrianliechti/emailbison-mcp/pkg/tool"
)

const engagementTop = 10

type engagementArgs struct {
	CampaignID int64  `json:"campaign_id"`
	Threshold  *int64 `json:"engagement_threshold"`
}

func (a *engagementArgs) validate() error {
	if err := positive("campaign_id", a.CampaignID); err != nil {
		return err
	}

	if a.Threshold != nil {
		return positive("engagement_threshold", *a.Threshold)
	}

	return nil
}

type engagedLead struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`

	Opens   int64 `json:"opens"`
	Replies int64 `json:"replies"`
	Score   int64 `json:"score"`
}

type engagementBuckets struct {
	Highly  int `json:"highly_engaged"`
	Engaged int `json:"engaged"`
	Low     int `json:"low"`
	None    int `json:"none"`
}

type engagementReport struct {
	CampaignID int64 `json:"campaign_id"`
	Threshold  int64 `json:"threshold"`
	Total      int   `json:"total"`

	Buckets engagementBuckets `json:"buckets"`
	Top     []engagedLead     `json:"top_engaged"`
}

func (c *Client) leadEngagementAnalysis() descriptor {
	schema := object([]string{"campaign_id"}, map[string]any{
		"campaign_id":          integer("Campaign id"),
		"engagement_threshold": prop("integer", "Score at which a lead counts as engaged; three times this value is highly engaged", map[string]any{"minimum": 1, "default": 2}),
	})

	return newTool("lead_engagement_analysis", "Score campaign leads by opens and replies (opens + 3 x replies) and bucket them by engagement.", schema,
		func(ctx context.Context, args engagementArgs) (any, error) {
			threshold := int64(2)

			if args.Threshold != nil {
				threshold = *args.Threshold
			}

			list, err := c.client.CampaignLeads(ctx, args.CampaignID, nil)

			if err != nil {
				return nil, err
			}

			report := engagementReport{
				CampaignID: args.CampaignID,
				Threshold:  threshold,
				Total:      len(list.Data),

				Top: []engagedLead{},
			}

			for _, l := range list.Data {
				opens := l.Engagement.Opens.Int()
				replies := l.Engagement.Replies.Int()

				score := opens + 3*replies

				switch {
				case score >= 3*threshold:
					report.Buckets.Highly++

					report.Top = append(report.Top, engagedLead{
						ID:    l.ID,
						Name:  strings.TrimSpace(l.FirstName + " " + l.LastName),
						Email: l.Email,

						Opens:   opens,
						Replies: replies,
						Score:   score,
					})

				case score >= threshold:
					report.Buckets.Engaged++

				case score > 0:
					report.Buckets.Low++

				default:
					report.Buckets.None++
				}
			}

			slices.SortStableFunc(report.Top, func(a, b engagedLead) int {
				return cmp.Compare(b.Score, a.Score)
			})

			if len(report.Top) > engagementTop {
				report.Top = report.Top[:engagementTop]
			}

			return report, nil
		})
}

type addLeadsArgs struct {
	CampaignID int64 `json:"campaign_id"`

	LeadIDs    []int64 `json:"lead_ids"`
	LeadListID int64   `json:"lead_list_id"`

	AllowParallel bool `json:"allow_parallel"`
}

func (a *addLeadsArgs) validate() error {
	if err := positive("campaign_id", a.CampaignID); err != nil {
		return err
	}

	switch {
	case len(a.LeadIDs) > 0 && a.LeadListID != 0:
		return tool.InvalidArgument("lead_list_id", "cannot be combined with lead_ids")

	case a.LeadListID != 0:
		return positive("lead_list_id", a.LeadListID)

	case len(a.LeadIDs) == 0:
		return tool.InvalidArgument("lead_ids", "either lead_ids or lead_list_id is required")
	}

	return positives("lead_ids", a.LeadIDs, true)
}

func (c *Client) addLeadsToCampaign() descriptor {
	schema := object([]string{"campaign_id"}, map[string]any{
		"campaign_id":    integer("Campaign id"),
		"lead_ids":       integers("Lead ids to attach"),
		"lead_list_id":   integer("Lead list to attach instead of individual leads"),
		"allow_parallel": boolean("Allow leads to be contacted by other campaigns at the same time", false),
	})

	return newTool("add_leads_to_campaign", "Attach leads or a lead list to a campaign.", schema,
		func(ctx context.Context, args addLeadsArgs) (any, error) {
			if args.LeadListID != 0 {
				return c.client.AttachLeadList(ctx, args.CampaignID, args.LeadListID, args.AllowParallel)
			}

			return c.client.AttachLeads(ctx, args.CampaignID, args.LeadIDs, args.AllowParallel)
		})
}

type stopEmailsArgs struct {
	CampaignID int64   `json:"campaign_id"`
	LeadIDs    []int64 `json:"lead_ids"`
}

func (a *stopEmailsArgs) validate() error {
	if err := positive("campaign_id", a.CampaignID); err != nil {
		return err
	}

	return positives("lead_ids", a.LeadIDs, true)
}

func (c *Client) stopFutureEmails() descriptor {
	schema := object([]string{"campaign_id", "lead_ids"}, map[string]any{
		"campaign_id": integer("Campaign id"),
		"lead_ids":    integers("Leads that should receive no further emails"),
	})

	return newTool("stop_future_emails", "Stop all future emails of a campaign for the given leads.", schema,
		func(ctx context.Context, args stopEmailsArgs) (any, error) {
			return c.client.StopFutureEmails(ctx, args.CampaignID, args.LeadIDs)
		})
}
