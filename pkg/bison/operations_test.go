package bison

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, req.Method+" "+req.URL.Path)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.calls...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestCampaignsFollowsPages(t *testing.T) {
	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)

		assert.Equal(t, "active", r.URL.Query().Get("status"))

		switch r.URL.Query().Get("page") {
		case "":
			writeJSON(w, 200, map[string]any{
				"data": []any{map[string]any{"id": 1, "name": "Q4"}},
				"meta": map[string]any{"current_page": 1, "last_page": 3},
			})
		case "2":
			writeJSON(w, 200, map[string]any{
				"data": []any{map[string]any{"id": 2, "name": "Q1", "emails_sent": "42"}},
			})
		case "3":
			writeJSON(w, 200, map[string]any{
				"data": []any{map[string]any{"id": 3, "name": "Q2"}},
			})
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)

	list, err := c.Campaigns(context.Background(), &CampaignListOptions{Status: "active"})
	require.NoError(t, err)

	require.Equal(t, 3, list.Total)
	require.Equal(t, 3, list.Pages)
	require.Equal(t, "Q1", list.Data[1].Name)
	require.Equal(t, int64(42), list.Data[1].EmailsSent.Int())
	require.Len(t, rec.list(), 3)
}

func TestPaginationIsBounded(t *testing.T) {
	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)

		writeJSON(w, 200, map[string]any{
			"data": []any{map[string]any{"id": 1}},
			"meta": map[string]any{"current_page": 1, "last_page": 1000},
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	c.maxPages = 4

	list, err := c.CampaignLeads(context.Background(), 7, nil)
	require.NoError(t, err)

	require.Equal(t, 4, list.Total)
	require.Len(t, rec.list(), 4)
}

func TestCampaignStatsFallsBack(t *testing.T) {
	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)

		if r.Method == http.MethodPost {
			writeJSON(w, 405, map[string]any{"message": "method not allowed"})
			return
		}

		assert.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		assert.Empty(t, r.URL.Query().Get("end_date"))

		writeJSON(w, 200, map[string]any{
			"data": map[string]any{
				"emails_sent":       100,
				"opened_percentage": "12.5",
				"sequence_step_stats": []any{
					map[string]any{"sequence_step_id": 9, "sent": 10, "unique_replies": 2},
				},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)

	stats, err := c.CampaignStats(context.Background(), 5, "2024-01-01", "yesterday")
	require.NoError(t, err)

	require.Equal(t, []string{"POST /api/campaigns/5/stats", "GET /api/campaigns/5/stats"}, rec.list())
	require.Equal(t, Number(100), stats.EmailsSent)
	require.Equal(t, Number(12.5), stats.OpenedPercentage)
	require.Len(t, stats.SequenceStepStats, 1)
}

func TestCampaignStatsReturnsLastError(t *testing.T) {
	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		writeJSON(w, 404, map[string]any{"message": "not found"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)

	_, err := c.CampaignStats(context.Background(), 5, "", "")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Status)
	require.Len(t, rec.list(), 3)
}

func TestSequenceStepsFallsBackToLegacy(t *testing.T) {
	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)

		if r.URL.Path == "/api/campaigns/v1.1/3/sequence-steps" {
			writeJSON(w, 404, map[string]any{"message": "not found"})
			return
		}

		writeJSON(w, 200, map[string]any{
			"data": map[string]any{
				"sequence_steps": []any{
					map[string]any{"id": 1, "email_subject": "Hi", "wait_in_days": 2, "variant": 1},
				},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)

	seq, err := c.SequenceSteps(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, seq.Steps, 1)
	require.True(t, bool(seq.Steps[0].Variant))
	require.Equal(t, []string{"GET /api/campaigns/v1.1/3/sequence-steps", "GET /api/campaigns/3/sequence-steps"}, rec.list())
}

func TestCampaignRepliesFilterShapes(t *testing.T) {
	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)

		// only the bare campaign_id shape is accepted
		if r.URL.Query().Get("filters[campaign_id]") != "12" {
			writeJSON(w, 422, map[string]any{"errors": map[string]any{"filters": []any{"invalid"}}})
			return
		}

		assert.Equal(t, "1", r.URL.Query().Get("filters[interested][value]"))
		assert.Equal(t, "Inbox", r.URL.Query().Get("filters[folder][value]"))
		assert.Equal(t, "200", r.URL.Query().Get("per_page"))

		writeJSON(w, 200, map[string]any{
			"data": []any{map[string]any{"id": 1, "interested": true, "subject": "Re: hello", "custom": "kept"}},
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)

	list, err := c.CampaignReplies(context.Background(), 12, &ReplyOptions{Status: ReplyStatusInterested, Folder: "inbox"})
	require.NoError(t, err)

	require.Len(t, rec.list(), 3)
	require.Equal(t, 1, list.Total)
	require.True(t, bool(list.Data[0].Interested))

	data, err := json.Marshal(list.Data[0])
	require.NoError(t, err)
	require.Contains(t, string(data), `"custom":"kept"`)
}

func TestCampaignRepliesLegacyFallback(t *testing.T) {
	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)

		if r.URL.Path == "/api/replies" {
			writeJSON(w, 400, map[string]any{"message": "bad filters"})
			return
		}

		writeJSON(w, 200, map[string]any{
			"data": []any{
				map[string]any{"id": 1, "automated_reply": 1, "folder": "Inbox"},
				map[string]any{"id": 2, "automated_reply": 0, "folder": "Inbox"},
				map[string]any{"id": 3, "automated_reply": 0, "folder": "Spam"},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)

	list, err := c.CampaignReplies(context.Background(), 12, &ReplyOptions{Status: ReplyStatusNotAutomated, Folder: "inbox"})
	require.NoError(t, err)

	calls := rec.list()
	require.Len(t, calls, 6)
	require.Equal(t, "GET /api/campaigns/12/replies", calls[5])

	require.Equal(t, 1, list.Total)
	require.Equal(t, int64(2), list.Data[0].ID)
}
