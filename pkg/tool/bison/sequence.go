package bison

import (
	"context"
	"math"
	"time"

	"github.com/adrianliechti/emailbison-mcp/pkg/bison"
	"github.com/adrianliechti/emailbison-mcp/pkg/tool"

	"golang.org/x/sync/errgroup"
)

const eventWindow = 30 * 24 * time.Hour

type stepInsight struct {
	Position int   `json:"position"`
	ID       int64 `json:"id"`

	Subject     string  `json:"subject"`
	WaitInDays  float64 `json:"wait_in_days"`
	ThreadReply bool    `json:"thread_reply"`
	Variant     bool    `json:"variant"`

	Sent          int64   `json:"sent"`
	UniqueOpens   int64   `json:"unique_opens"`
	UniqueReplies int64   `json:"unique_replies"`
	Interested    int64   `json:"interested"`
	ReplyRate     float64 `json:"reply_rate"`
}

// joinSteps matches sequence steps with their statistics by step id. Steps
// without statistics report zero counts.
func joinSteps(seq *bison.Sequence, stats *bison.CampaignStats) []stepInsight {
	result := []stepInsight{}

	if seq == nil {
		return result
	}

	index := map[int64]bison.SequenceStepStats{}

	if stats != nil {
		for _, s := range stats.SequenceStepStats {
			index[s.SequenceStepID] = s
		}
	}

	for i, step := range seq.Steps {
		s := index[step.ID]

		subject := step.EmailSubject

		if subject == "" {
			subject = "(no subject)"
		}

		insight := stepInsight{
			Position: i + 1,
			ID:       step.ID,

			Subject:     subject,
			WaitInDays:  float64(step.WaitInDays),
			ThreadReply: bool(step.ThreadReply),
			Variant:     bool(step.Variant),

			Sent:          s.Sent.Int(),
			UniqueOpens:   s.UniqueOpens.Int(),
			UniqueReplies: s.UniqueReplies.Int(),
			Interested:    s.Interested.Int(),
		}

		insight.ReplyRate = math.Round(float64(insight.UniqueReplies)/float64(max(insight.Sent, 1))*1000) / 10

		result = append(result, insight)
	}

	return result
}

type sequenceInsightsArgs struct {
	CampaignID int64 `json:"campaign_id"`
}

func (a *sequenceInsightsArgs) validate() error {
	return positive("campaign_id", a.CampaignID)
}

type sequenceInsights struct {
	CampaignID int64 `json:"campaign_id"`

	StepCount   int  `json:"step_count"`
	HasVariants bool `json:"has_variants"`

	Steps  []stepInsight            `json:"steps"`
	Errors map[string]*tool.Failure `json:"errors,omitempty"`
}

func (c *Client) sequenceOptimizationInsights() descriptor {
	schema := object([]string{"campaign_id"}, map[string]any{
		"campaign_id": integer("Campaign id"),
	})

	return newTool("sequence_optimization_insights", "Per-step performance of a campaign sequence: wait days, threading, variants, sends and reply rate.", schema,
		func(ctx context.Context, args sequenceInsightsArgs) (any, error) {
			var stats *bison.CampaignStats
			var statsErr error

			var seq *bison.Sequence
			var seqErr error

			var g errgroup.Group
			g.SetLimit(c.fanout)

			g.Go(func() error {
				stats, statsErr = c.client.CampaignStats(ctx, args.CampaignID, "", "")
				return nil
			})

			g.Go(func() error {
				seq, seqErr = c.client.SequenceSteps(ctx, args.CampaignID)
				return nil
			})

			g.Wait()

			if err := ctx.Err(); err != nil {
				return nil, err
			}

			result := sequenceInsights{
				CampaignID: args.CampaignID,
				Steps:      joinSteps(seq, stats),
			}

			for _, s := range result.Steps {
				if s.Variant {
					result.HasVariants = true
				}
			}

			result.StepCount = len(result.Steps)

			if statsErr != nil || seqErr != nil {
				result.Errors = map[string]*tool.Failure{}

				if statsErr != nil {
					result.Errors["stats"] = tool.NewFailure(statsErr)
				}

				if seqErr != nil {
					result.Errors["sequence"] = tool.NewFailure(seqErr)
				}
			}

			return result, nil
		})
}

type eventStatsArgs struct {
	CampaignID     int64   `json:"campaign_id"`
	CampaignIDs    []int64 `json:"campaign_ids"`
	SenderEmailIDs []int64 `json:"sender_email_ids"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (a *eventStatsArgs) validate() error {
	if a.CampaignID != 0 {
		if err := positive("campaign_id", a.CampaignID); err != nil {
			return err
		}
	}

	if err := positives("campaign_ids", a.CampaignIDs, false); err != nil {
		return err
	}

	if err := positives("sender_email_ids", a.SenderEmailIDs, false); err != nil {
		return err
	}

	if err := optionalDate("start_date", a.StartDate); err != nil {
		return err
	}

	return optionalDate("end_date", a.EndDate)
}

func (c *Client) campaignEventsStats() descriptor {
	schema := object(nil, map[string]any{
		"campaign_id":      integer("Single campaign id"),
		"campaign_ids":     integers("Campaign ids"),
		"sender_email_ids": integers("Sender email ids"),
		"start_date":       date("Start of the window, defaults to 30 days ago"),
		"end_date":         date("End of the window, defaults to today"),
	})

	return newTool("campaign_events_stats", "Daily event statistics (sent, opened, replied, bounced, ...) for campaigns and sender emails.", schema,
		func(ctx context.Context, args eventStatsArgs) (any, error) {
			now := c.now()

			options := bison.EventStatsOptions{
				Start: args.StartDate,
				End:   args.EndDate,

				SenderEmailIDs: args.SenderEmailIDs,
				CampaignIDs:    args.CampaignIDs,
			}

			if args.CampaignID > 0 {
				options.CampaignIDs = append([]int64{args.CampaignID}, options.CampaignIDs...)
			}

			if options.End == "" {
				options.End = now.Format(time.DateOnly)
			}

			if options.Start == "" {
				options.Start = now.Add(-eventWindow).Format(time.DateOnly)
			}

			data, err := c.client.CampaignEventStats(ctx, options)

			if err != nil {
				return nil, err
			}

			return c.capped(data)
		})
}
