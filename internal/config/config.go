package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/utils"
)

// Policy holds the tunable thresholds behind idea proposal, brain score
// reconciliation and the publishing dispatcher. Values are read from an
// optional YAML file (POLICY_FILE) and fall back to defaults; none of
// them are domain constants.
type Policy struct {
	// Brain score tier expectations, in total views.
	BreakoutViews int64 `yaml:"breakout_views"`
	BaselineViews int64 `yaml:"baseline_views"`

	// Evaluation window for an unscored prediction, in days.
	ChallengeWindowDays int `yaml:"challenge_window_days"`

	// Dispatcher poll interval.
	DispatchInterval time.Duration `yaml:"dispatch_interval"`

	// A task stuck in posting longer than this is assumed crashed and
	// re-dispatched under the same idempotency key.
	PostingStaleAfter time.Duration `yaml:"posting_stale_after"`

	// Pipeline health flags a gap when nothing has been scheduled or
	// published for this long.
	ContentGapHours int `yaml:"content_gap_hours"`

	// Maximum ideas returned per proposal batch.
	IdeaBatchSize int `yaml:"idea_batch_size"`

	// Bound on per-connection SSE queues.
	SSEQueueSize int `yaml:"sse_queue_size"`
}

func Default() Policy {
	return Policy{
		BreakoutViews:       10000,
		BaselineViews:       1000,
		ChallengeWindowDays: 7,
		DispatchInterval:    30 * time.Second,
		PostingStaleAfter:   10 * time.Minute,
		ContentGapHours:     48,
		IdeaBatchSize:       5,
		SSEQueueSize:        16,
	}
}

// Load reads the policy file named by POLICY_FILE, merging it over the
// defaults. A missing env var or file is not an error.
func Load(log *logger.Logger) (Policy, error) {
	p := Default()

	path := utils.GetEnv("POLICY_FILE", "", log)
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if log != nil {
				log.Warn("Policy file not found, using defaults", "path", path)
			}
			return p, nil
		}
		return p, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Default(), fmt.Errorf("parse policy file: %w", err)
	}
	return p.normalized(), nil
}

func (p Policy) normalized() Policy {
	d := Default()
	if p.BreakoutViews <= 0 {
		p.BreakoutViews = d.BreakoutViews
	}
	if p.BaselineViews <= 0 {
		p.BaselineViews = d.BaselineViews
	}
	if p.ChallengeWindowDays <= 0 {
		p.ChallengeWindowDays = d.ChallengeWindowDays
	}
	if p.DispatchInterval <= 0 {
		p.DispatchInterval = d.DispatchInterval
	}
	if p.PostingStaleAfter <= 0 {
		p.PostingStaleAfter = d.PostingStaleAfter
	}
	if p.ContentGapHours <= 0 {
		p.ContentGapHours = d.ContentGapHours
	}
	if p.IdeaBatchSize <= 0 || p.IdeaBatchSize > d.IdeaBatchSize {
		p.IdeaBatchSize = d.IdeaBatchSize
	}
	if p.SSEQueueSize <= 0 {
		p.SSEQueueSize = d.SSEQueueSize
	}
	return p
}
