package bison

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number accepts JSON numbers, numeric strings and null.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(bytes.TrimSpace(data)), `"`)

	if text == "" || text == "null" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseFloat(text, 64)

	if err != nil {
		*n = 0
		return nil
	}

	*n = Number(v)
	return nil
}

func (n Number) Int() int64 {
	return int64(n)
}

// Flag accepts booleans, 0/1 numbers and strings.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	text := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))

	switch text {
	case "", "null", "false", "0", "no":
		*f = false

	default:
		*f = true
	}

	return nil
}

type Campaign struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`

	EmailsSent    Number `json:"emails_sent"`
	Opened        Number `json:"opened"`
	UniqueOpens   Number `json:"unique_opens"`
	Replied       Number `json:"replied"`
	UniqueReplies Number `json:"unique_replies"`
	Bounced       Number `json:"bounced"`
	Interested    Number `json:"interested"`
	TotalLeads    Number `json:"total_leads"`
}

type CampaignStats struct {
	EmailsSent          Number `json:"emails_sent"`
	TotalLeadsContacted Number `json:"total_leads_contacted"`

	OpenedPercentage                  Number `json:"opened_percentage"`
	UniqueRepliesPerContactPercentage Number `json:"unique_replies_per_contact_percentage"`
	BouncedPercentage                 Number `json:"bounced_percentage"`
	InterestedPercentage              Number `json:"interested_percentage"`

	SequenceStepStats []SequenceStepStats `json:"sequence_step_stats"`
}

type SequenceStepStats struct {
	SequenceStepID int64 `json:"sequence_step_id"`

	Sent          Number `json:"sent"`
	UniqueOpens   Number `json:"unique_opens"`
	UniqueReplies Number `json:"unique_replies"`
	Interested    Number `json:"interested"`
}

type Sequence struct {
	Steps []SequenceStep `json:"sequence_steps"`
}

type SequenceStep struct {
	ID int64 `json:"id"`

	EmailSubject string `json:"email_subject"`
	WaitInDays   Number `json:"wait_in_days"`

	ThreadReply Flag `json:"thread_reply"`
	Variant     Flag `json:"variant"`
}

type Lead struct {
	ID int64 `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	Engagement LeadEngagement `json:"lead_campaign_data"`
}

type LeadEngagement struct {
	Opens   Number `json:"opens"`
	Replies Number `json:"replies"`
}

// Reply keeps the original document so it can be dumped without losing fields.
type Reply struct {
	ID int64 `json:"id"`

	Subject          string `json:"subject"`
	FromName         string `json:"from_name"`
	FromEmailAddress string `json:"from_email_address"`
	TextBody         string `json:"text_body"`
	Folder           string `json:"folder"`

	Interested     Flag `json:"interested"`
	AutomatedReply Flag `json:"automated_reply"`

	raw json.RawMessage
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	type plain Reply

	var p plain

	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*r = Reply(p)
	r.raw = append(json.RawMessage(nil), data...)

	return nil
}

func (r Reply) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}

	type plain Reply
	return json.Marshal(plain(r))
}

type envelope[T any] struct {
	Data T `json:"data"`
}
