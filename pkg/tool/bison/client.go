package bison

import (
	"context"
	"time"

	"github.com/adrianliechti/emailbison-mcp/pkg/bison"
	"github.com/adrianliechti/emailbison-mcp/pkg/tool"
)

var _ tool.Provider = (*Client)(nil)

type Client struct {
	client *bison.Client

	tools []descriptor
	index map[string]descriptor

	fanout int
	limit  int

	now func() time.Time
}

func New(client *bison.Client, options ...Option) (*Client, error) {
	c := &Client{
		client: client,

		fanout: 4,
		limit:  50000,

		now: time.Now,
	}

	for _, option := range options {
		option(c)
	}

	c.tools = c.catalog()
	c.index = make(map[string]descriptor, len(c.tools))

	for _, d := range c.tools {
		c.index[d.Name] = d
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	result := make([]tool.Tool, 0, len(c.tools))

	for _, d := range c.tools {
		result = append(result, d.Tool)
	}

	return result, nil
}

func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	d, ok := c.index[name]

	if !ok {
		return nil, tool.ErrInvalidTool
	}

	return d.handler(ctx, parameters)
}

func (c *Client) catalog() []descriptor {
	return []descriptor{
		c.listCampaigns(),
		c.analyzeCampaign(),
		c.campaignPerformanceSummary(),
		c.createCampaign(),

		c.analyzeReplies(),
		c.dumpRepliesJSON(),

		c.leadEngagementAnalysis(),
		c.addLeadsToCampaign(),
		c.stopFutureEmails(),

		c.sequenceOptimizationInsights(),
		c.campaignEventsStats(),

		c.listEmailAccounts(),
		c.listWarmupAccounts(),
		c.warmupAccountDetails(),
		c.warmupEnable(),
		c.warmupDisable(),
		c.warmupUpdateLimits(),

		c.rawRequest(),
	}
}
