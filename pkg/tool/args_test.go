package tool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleArgs struct {
	CampaignID int64   `json:"campaign_id"`
	LeadIDs    []int64 `json:"lead_ids"`
	Status     string  `json:"status"`
}

type detailedError struct{}

func (detailedError) Error() string {
	return "upstream rejected the request"
}

func (detailedError) ErrorDetail() any {
	return map[string]any{"status": 422}
}

func TestDecode(t *testing.T) {
	var args sampleArgs

	err := Decode(map[string]any{
		"campaign_id": 7.0,
		"lead_ids":    []any{1.0, 2.0},
		"unknown":     true,
	}, &args)

	require.NoError(t, err)
	require.Equal(t, sampleArgs{CampaignID: 7, LeadIDs: []int64{1, 2}}, args)
}

func TestDecodeNil(t *testing.T) {
	var args sampleArgs

	require.NoError(t, Decode(nil, &args))
	require.Zero(t, args)
}

func TestDecodeNamesArgument(t *testing.T) {
	tests := []struct {
		name       string
		parameters map[string]any
		argument   string
		message    string
	}{
		{"string for integer", map[string]any{"campaign_id": "seven"}, "campaign_id", "expected integer"},
		{"fraction for integer", map[string]any{"campaign_id": 1.5}, "campaign_id", "expected integer"},
		{"scalar for list", map[string]any{"lead_ids": 3.0}, "lead_ids", "expected array"},
		{"number for string", map[string]any{"status": 1.0}, "status", "expected string"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var args sampleArgs

			err := Decode(tc.parameters, &args)

			var argErr *ArgumentError
			require.True(t, errors.As(err, &argErr))
			require.Equal(t, tc.argument, argErr.Argument)
			require.Contains(t, argErr.Error(), tc.message)
		})
	}
}

func TestNewFailure(t *testing.T) {
	f := NewFailure(InvalidArgument("campaign_id", "must be a positive integer"))

	require.Equal(t, "campaign_id", f.Argument)
	require.Equal(t, "invalid argument campaign_id: must be a positive integer", f.Error)
	require.Nil(t, f.Detail)

	f = NewFailure(detailedError{})

	require.Empty(t, f.Argument)
	require.Equal(t, map[string]any{"status": 422}, f.Detail)
}

func TestNormalizeSchema(t *testing.T) {
	require.Equal(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}, NormalizeSchema(nil))

	schema := NormalizeSchema(map[string]any{
		"items": map[string]any{"type": "integer"},
	})

	require.Equal(t, "array", schema["type"])
}
