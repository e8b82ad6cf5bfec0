package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/adrianliechti/emailbison-mcp/pkg/bison"

	"gopkg.in/yaml.v3"
)

// Tuning holds optional client settings from emailbison.yaml. Zero values
// keep the built-in defaults.
type Tuning struct {
	Retry retryConfig `yaml:"retry"`

	Timeout time.Duration `yaml:"timeout"`

	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	ExcerptBytes int `yaml:"excerpt_bytes"`
	MaxPages     int `yaml:"max_pages"`
	OutputBytes  int `yaml:"output_bytes"`
	Fanout       int `yaml:"fanout"`
}

type retryConfig struct {
	MaxRetries *int `yaml:"max_retries"`

	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
	MaxElapsed time.Duration `yaml:"max_elapsed"`
}

// RetryPolicy overlays the configured values on the default policy.
func (t Tuning) RetryPolicy() bison.RetryPolicy {
	policy := bison.DefaultRetryPolicy()

	if t.Retry.MaxRetries != nil {
		policy.MaxRetries = max(*t.Retry.MaxRetries, 0)
	}

	if t.Retry.BaseDelay > 0 {
		policy.BaseDelay = t.Retry.BaseDelay
	}

	if t.Retry.MaxDelay > 0 {
		policy.MaxDelay = t.Retry.MaxDelay
	}

	if t.Retry.MaxElapsed > 0 {
		policy.MaxElapsed = t.Retry.MaxElapsed
	}

	return policy
}

func parseTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var tuning Tuning

	if len(bytes.TrimSpace(data)) == 0 {
		return &tuning, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&tuning); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if tuning.RateLimit < 0 {
		return nil, fmt.Errorf("parse %s: rate_limit must not be negative", path)
	}

	return &tuning, nil
}
