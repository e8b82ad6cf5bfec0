package bison

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/adrianliechti/emailbison-mcp/pkg/bison"
	"github.com/adrianliechti/emailbison-mcp/pkg/tool"

	"golang.org/x/sync/errgroup"
)

const (
	summaryCampaigns = 10
	summaryTop       = 5

	campaignSamples       = 5
	campaignPreviewLength = 200
)

type listCampaignsArgs struct {
	Status string  `json:"status"`
	TagIDs []int64 `json:"tag_ids"`
}

func (a *listCampaignsArgs) validate() error {
	return positives("tag_ids", a.TagIDs, false)
}

func (c *Client) listCampaigns() descriptor {
	schema := object(nil, map[string]any{
		"status":  str("Only return campaigns with this status (e.g. active, paused, draft)"),
		"tag_ids": integers("Only return campaigns carrying one of these tag ids"),
	})

	return newTool("list_campaigns", "List campaigns with their headline metrics.", schema,
		func(ctx context.Context, args listCampaignsArgs) (any, error) {
			list, err := c.client.Campaigns(ctx, &bison.CampaignListOptions{
				Status: args.Status,
				TagIDs: args.TagIDs,
			})

			if err != nil {
				return nil, err
			}

			return c.capped(list)
		})
}

type analyzeCampaignArgs struct {
	CampaignID int64 `json:"campaign_id"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	IncludeReplies  *bool `json:"include_replies"`
	IncludeSequence *bool `json:"include_sequence"`
}

func (a *analyzeCampaignArgs) validate() error {
	if err := positive("campaign_id", a.CampaignID); err != nil {
		return err
	}

	if err := optionalDate("start_date", a.StartDate); err != nil {
		return err
	}

	return optionalDate("end_date", a.EndDate)
}

type campaignAnalysis struct {
	CampaignID int64 `json:"campaign_id"`

	Campaign Section[bison.Campaign]      `json:"campaign"`
	Stats    Section[bison.CampaignStats] `json:"stats"`

	Sequence *Section[[]stepInsight] `json:"sequence,omitempty"`
	Replies  *Section[replySummary]  `json:"replies,omitempty"`
}

func (c *Client) analyzeCampaign() descriptor {
	schema := object([]string{"campaign_id"}, map[string]any{
		"campaign_id":      integer("Campaign id"),
		"start_date":       date("Start of the statistics window"),
		"end_date":         date("End of the statistics window"),
		"include_replies":  boolean("Include a reply summary with samples", true),
		"include_sequence": boolean("Include per-step sequence performance", true),
	})

	return newTool("analyze_campaign", "Analyze one campaign: details, statistics, sequence step performance and replies. Sections that fail are reported individually.", schema,
		func(ctx context.Context, args analyzeCampaignArgs) (any, error) {
			result := campaignAnalysis{
				CampaignID: args.CampaignID,
			}

			var stats *bison.CampaignStats
			var steps *bison.Sequence
			var stepsErr error

			var g errgroup.Group
			g.SetLimit(c.fanout)

			g.Go(func() error {
				campaign, err := c.client.Campaign(ctx, args.CampaignID)
				result.Campaign = section(campaign, err)
				return nil
			})

			g.Go(func() error {
				s, err := c.client.CampaignStats(ctx, args.CampaignID, args.StartDate, args.EndDate)
				stats = s
				result.Stats = section(s, err)
				return nil
			})

			if args.IncludeSequence == nil || *args.IncludeSequence {
				g.Go(func() error {
					steps, stepsErr = c.client.SequenceSteps(ctx, args.CampaignID)
					return nil
				})
			}

			if args.IncludeReplies == nil || *args.IncludeReplies {
				g.Go(func() error {
					var summary *replySummary

					list, err := c.client.CampaignReplies(ctx, args.CampaignID, nil)

					if err == nil {
						summary = summarizeReplies(list.Data, campaignSamples, campaignPreviewLength)
					}

					s := section(summary, err)
					result.Replies = &s

					return nil
				})
			}

			g.Wait()

			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if args.IncludeSequence == nil || *args.IncludeSequence {
				var insights *[]stepInsight

				if stepsErr == nil {
					joined := joinSteps(steps, stats)
					insights = &joined
				}

				s := section(insights, stepsErr)
				result.Sequence = &s
			}

			return result, nil
		})
}

type performanceArgs struct {
	CampaignID  int64   `json:"campaign_id"`
	CampaignIDs []int64 `json:"campaign_ids"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (a *performanceArgs) validate() error {
	if a.CampaignID != 0 {
		if err := positive("campaign_id", a.CampaignID); err != nil {
			return err
		}
	}

	if err := positives("campaign_ids", a.CampaignIDs, false); err != nil {
		return err
	}

	if err := optionalDate("start_date", a.StartDate); err != nil {
		return err
	}

	return optionalDate("end_date", a.EndDate)
}

func (a *performanceArgs) ids() []int64 {
	var ids []int64

	if a.CampaignID > 0 {
		ids = append(ids, a.CampaignID)
	}

	for _, id := range a.CampaignIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	return ids
}

type campaignPerformance struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`

	EmailsSent     int64   `json:"emails_sent"`
	OpenRate       float64 `json:"open_rate"`
	ReplyRate      float64 `json:"reply_rate"`
	InterestedRate float64 `json:"interested_rate"`
}

type performanceFailure struct {
	ID    int64         `json:"id"`
	Error *tool.Failure `json:"error"`
}

type performanceSummary struct {
	Evaluated int `json:"evaluated"`

	Top    []campaignPerformance `json:"top"`
	Errors []performanceFailure  `json:"errors,omitempty"`
}

func (c *Client) campaignPerformanceSummary() descriptor {
	schema := object(nil, map[string]any{
		"campaign_id":  integer("Single campaign id"),
		"campaign_ids": integers("Campaign ids to compare; defaults to the first 10 campaigns"),
		"start_date":   date("Start of the statistics window"),
		"end_date":     date("End of the statistics window"),
	})

	return newTool("campaign_performance_summary", "Rank campaigns by reply rate and return the top 5 with open, reply and interested rates.", schema,
		func(ctx context.Context, args performanceArgs) (any, error) {
			ids := args.ids()

			if len(ids) == 0 {
				list, err := c.client.Campaigns(ctx, nil)

				if err != nil {
					return nil, err
				}

				for _, campaign := range list.Data {
					if len(ids) == summaryCampaigns {
						break
					}

					ids = append(ids, campaign.ID)
				}
			}

			var mu sync.Mutex

			result := performanceSummary{
				Top: []campaignPerformance{},
			}

			var g errgroup.Group
			g.SetLimit(c.fanout)

			for _, id := range ids {
				g.Go(func() error {
					p, err := c.performance(ctx, id, args.StartDate, args.EndDate)

					mu.Lock()
					defer mu.Unlock()

					if err != nil {
						result.Errors = append(result.Errors, performanceFailure{ID: id, Error: tool.NewFailure(err)})
						return nil
					}

					result.Top = append(result.Top, *p)
					return nil
				})
			}

			g.Wait()

			if err := ctx.Err(); err != nil {
				return nil, err
			}

			result.Evaluated = len(result.Top)

			slices.SortStableFunc(result.Top, func(a, b campaignPerformance) int {
				if n := cmp.Compare(b.ReplyRate, a.ReplyRate); n != 0 {
					return n
				}

				return cmp.Compare(a.ID, b.ID)
			})

			slices.SortFunc(result.Errors, func(a, b performanceFailure) int {
				return cmp.Compare(a.ID, b.ID)
			})

			if len(result.Top) > summaryTop {
				result.Top = result.Top[:summaryTop]
			}

			return result, nil
		})
}

func (c *Client) performance(ctx context.Context, id int64, start, end string) (*campaignPerformance, error) {
	campaign, err := c.client.Campaign(ctx, id)

	if err != nil {
		return nil, err
	}

	stats, err := c.client.CampaignStats(ctx, id, start, end)

	if err != nil {
		return nil, err
	}

	return &campaignPerformance{
		ID:     id,
		Name:   campaign.Name,
		Status: campaign.Status,

		EmailsSent:     stats.EmailsSent.Int(),
		OpenRate:       float64(stats.OpenedPercentage),
		ReplyRate:      float64(stats.UniqueRepliesPerContactPercentage),
		InterestedRate: float64(stats.InterestedPercentage),
	}, nil
}

type createCampaignArgs struct {
	Name  string         `json:"name"`
	Type  string         `json:"type"`
	Extra map[string]any `json:"extra"`
}

func (a *createCampaignArgs) validate() error {
	if a.Name == "" {
		return tool.InvalidArgument("name", "must not be empty")
	}

	return nil
}

func (c *Client) createCampaign() descriptor {
	schema := object([]string{"name"}, map[string]any{
		"name": str("Campaign name"),
		"type": prop("string", "Campaign type", map[string]any{"default": "outbound"}),
		"extra": prop("object", "Additional campaign attributes passed through to the API", map[string]any{
			"additionalProperties": true,
		}),
	})

	return newTool("create_campaign", "Create a new campaign.", schema,
		func(ctx context.Context, args createCampaignArgs) (any, error) {
			return c.client.CreateCampaign(ctx, args.Name, args.Type, args.Extra)
		})
}
