package bison

import (
	"context"
	"strconv"
)

const (
	ReplyStatusInterested   = "interested"
	ReplyStatusAutomated    = "automated_reply"
	ReplyStatusNotAutomated = "not_automated_reply"

	repliesPerPage = 200
)

var replyFolders = map[string]string{
	"inbox":   "Inbox",
	"sent":    "Sent",
	"spam":    "Spam",
	"bounced": "Bounced",
}

type ReplyOptions struct {
	Status string
	Folder string
}

func ValidReplyStatus(s string) bool {
	switch s {
	case "", ReplyStatusInterested, ReplyStatusAutomated, ReplyStatusNotAutomated:
		return true
	}

	return false
}

func ValidFolder(s string) bool {
	if s == "" || s == "all" {
		return true
	}

	_, ok := replyFolders[s]
	return ok
}

// the replies endpoint has accepted several filter encodings over time
var replyFilterShapes = []string{"single_value", "array", "bare", "array_value", "value_array"}

func replyFilters(shape string, campaignID int64, options *ReplyOptions) map[string]any {
	f := map[string]any{}

	switch shape {
	case "single_value":
		f["campaign_id"] = map[string]any{"value": campaignID}
	case "array":
		f["campaign_ids"] = []int64{campaignID}
	case "bare":
		f["campaign_id"] = campaignID
	case "array_value":
		f["campaign_ids"] = map[string]any{"value": []int64{campaignID}}
	case "value_array":
		f["campaign_id"] = []int64{campaignID}
	}

	if folder, ok := replyFolders[options.Folder]; ok {
		f["folder"] = map[string]any{"value": folder}
	}

	switch options.Status {
	case ReplyStatusInterested:
		f["interested"] = map[string]any{"value": 1}
	case ReplyStatusAutomated:
		f["automated_reply"] = map[string]any{"value": 1}
	case ReplyStatusNotAutomated:
		f["automated_reply"] = map[string]any{"value": 0}
	}

	return f
}

// CampaignReplies tries the global replies endpoint with each known filter
// shape and falls back to the legacy per-campaign endpoint, filtering locally.
func (c *Client) CampaignReplies(ctx context.Context, campaignID int64, options *ReplyOptions) (*List[Reply], error) {
	if options == nil {
		options = new(ReplyOptions)
	}

	var result *List[Reply]

	var candidates []func() error

	for _, shape := range replyFilterShapes {
		candidates = append(candidates, func() error {
			query := map[string]any{
				"filters":  replyFilters(shape, campaignID, options),
				"per_page": repliesPerPage,
			}

			list, err := collect[Reply](ctx, c, "/api/replies", query)

			if err != nil {
				return err
			}

			result = list
			return nil
		})
	}

	candidates = append(candidates, func() error {
		path := "/api/campaigns/" + strconv.FormatInt(campaignID, 10) + "/replies"

		list, err := collect[Reply](ctx, c, path, map[string]any{"per_page": repliesPerPage})

		if err != nil {
			return err
		}

		list.Data = filterReplies(list.Data, options)
		list.Total = len(list.Data)

		result = list
		return nil
	})

	if err := c.fallback(ctx, "campaign_replies", candidates...); err != nil {
		return nil, err
	}

	return result, nil
}

func filterReplies(replies []Reply, options *ReplyOptions) []Reply {
	folder, hasFolder := replyFolders[options.Folder]

	result := []Reply{}

	for _, r := range replies {
		switch options.Status {
		case ReplyStatusInterested:
			if !r.Interested {
				continue
			}
		case ReplyStatusAutomated:
			if !r.AutomatedReply {
				continue
			}
		case ReplyStatusNotAutomated:
			if r.AutomatedReply {
				continue
			}
		}

		if hasFolder && r.Folder != folder {
			continue
		}

		result = append(result, r)
	}

	return result
}
