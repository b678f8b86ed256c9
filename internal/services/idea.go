package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/config"
	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type IdeaService interface {
	ProposeIdeas(ctx context.Context, clientID uuid.UUID, format, rng string) ([]*types.FvsIdea, error)
	GetIdeas(ctx context.Context, clientID uuid.UUID, status types.IdeaStatus, limit int) ([]*types.FvsIdea, error)
	UpdateIdeaStatus(ctx context.Context, clientID, ideaID uuid.UUID, next types.IdeaStatus, override bool) (*types.FvsIdea, error)
}

type ideaService struct {
	db     *gorm.DB
	log    *logger.Logger
	policy config.Policy

	ideaRepo       repos.IdeaRepo
	snapshotRepo   repos.BrainSnapshotRepo
	activityRepo   repos.ActivityLogRepo
	analyticsRepo  repos.AnalyticsRepo
	submissionRepo repos.SubmissionRepo

	generator IdeaGenerator
	fallback  IdeaGenerator
	notifier  BrainNotifier
}

func NewIdeaService(
	db *gorm.DB,
	baseLog *logger.Logger,
	policy config.Policy,
	ideaRepo repos.IdeaRepo,
	snapshotRepo repos.BrainSnapshotRepo,
	activityRepo repos.ActivityLogRepo,
	analyticsRepo repos.AnalyticsRepo,
	submissionRepo repos.SubmissionRepo,
	generator IdeaGenerator,
	notifier BrainNotifier,
) IdeaService {
	return &ideaService{
		db:             db,
		log:            baseLog.With("service", "IdeaService"),
		policy:         policy,
		ideaRepo:       ideaRepo,
		snapshotRepo:   snapshotRepo,
		activityRepo:   activityRepo,
		analyticsRepo:  analyticsRepo,
		submissionRepo: submissionRepo,
		generator:      generator,
		fallback:       NewMockIdeaGenerator(0),
		notifier:       notifier,
	}
}

// simulatedSignals is the fixed pool of external signal tuples blended
// into every proposal context; a random sample diversifies suggestions.
var simulatedSignals = []ExternalSignal{
	{Source: "youtube_trends", Topic: "faceless channels", Trend: "rising"},
	{Source: "youtube_trends", Topic: "long-form essays", Trend: "steady"},
	{Source: "podcast_charts", Topic: "interview formats", Trend: "rising"},
	{Source: "podcast_charts", Topic: "news recaps", Trend: "falling"},
	{Source: "tiktok_sounds", Topic: "behind the scenes", Trend: "rising"},
	{Source: "reddit_niche", Topic: "tool comparisons", Trend: "steady"},
	{Source: "reddit_niche", Topic: "income reports", Trend: "rising"},
	{Source: "newsletter_scan", Topic: "ai workflows", Trend: "rising"},
}

func sampleSignals(n int) []ExternalSignal {
	if n >= len(simulatedSignals) {
		out := make([]ExternalSignal, len(simulatedSignals))
		copy(out, simulatedSignals)
		return out
	}
	perm := rand.Perm(len(simulatedSignals))
	out := make([]ExternalSignal, 0, n)
	for _, i := range perm[:n] {
		out = append(out, simulatedSignals[i])
	}
	return out
}

func windowStart(rng string, now time.Time) time.Time {
	if rng == "90d" {
		return now.AddDate(0, 0, -90)
	}
	return now.AddDate(0, 0, -30)
}

// ProposeIdeas aggregates the client's trailing analytics and recent
// topics, blends simulated external signals, and asks the generator for
// candidates. Provider failure degrades to the deterministic fallback;
// only infra errors surface.
func (s *ideaService) ProposeIdeas(ctx context.Context, clientID uuid.UUID, format, rng string) ([]*types.FvsIdea, error) {
	if clientID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing client id", ErrInvalidArgument)
	}
	now := time.Now()

	summary, err := s.analyticsRepo.SummarizeWindow(ctx, nil, clientID, windowStart(rng, now))
	if err != nil {
		return nil, fmt.Errorf("summarize analytics: %w", err)
	}
	topics, err := s.submissionRepo.RecentTopics(ctx, nil, clientID, 5)
	if err != nil {
		return nil, fmt.Errorf("recent topics: %w", err)
	}

	ideaCtx := IdeaContext{
		Format:        format,
		Range:         rng,
		Analytics:     *summary,
		RecentTopics:  topics,
		SignalSamples: sampleSignals(4),
	}

	source := "ai_generator"
	candidates, genErr := s.generator.GenerateIdeas(ctx, ideaCtx)
	if genErr != nil || len(candidates) == 0 {
		if genErr != nil {
			s.log.Warn("Idea generator failed, using fallback", "error", genErr)
		}
		source = "fallback_generator"
		candidates, err = s.fallback.GenerateIdeas(ctx, ideaCtx)
		if err != nil {
			return nil, fmt.Errorf("fallback generator: %w", err)
		}
	}
	if len(candidates) > s.policy.IdeaBatchSize {
		candidates = candidates[:s.policy.IdeaBatchSize]
	}

	ideas := make([]*types.FvsIdea, 0, len(candidates))
	for _, c := range candidates {
		ideas = append(ideas, normalizeCandidate(clientID, format, c, now))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ideaRepo.Create(ctx, tx, ideas); err != nil {
			return fmt.Errorf("persist ideas: %w", err)
		}
		inputs := mustJSON(map[string]any{
			"format":    format,
			"range":     rng,
			"analytics": summary,
			"topics":    topics,
			"signals":   ideaCtx.SignalSamples,
		})
		patterns := mustJSON(map[string]any{
			"generator": source,
			"count":     len(ideas),
		})
		snap := &types.BrainSnapshot{
			ID:       uuid.New(),
			ClientID: clientID,
			Inputs:   datatypes.JSON(inputs),
			Patterns: datatypes.JSON(patterns),
		}
		if _, err := s.snapshotRepo.Create(ctx, tx, snap); err != nil {
			return fmt.Errorf("persist snapshot: %w", err)
		}
		entry := &types.ActivityLog{
			ID:       uuid.New(),
			ClientID: clientID,
			Action:   "ideas_proposed",
			Detail:   datatypes.JSON(mustJSON(map[string]any{"count": len(ideas), "source": source})),
		}
		if _, err := s.activityRepo.Create(ctx, tx, []*types.ActivityLog{entry}); err != nil {
			return fmt.Errorf("persist activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.IdeasProposed(clientID, len(ideas), source)
	return ideas, nil
}

func normalizeCandidate(clientID uuid.UUID, format string, c IdeaCandidate, now time.Time) *types.FvsIdea {
	topic := c.Topic
	if topic == "" {
		topic = "Untitled idea"
	}
	targetFormat := c.Format
	if targetFormat == "" {
		targetFormat = format
	}
	if targetFormat == "" {
		targetFormat = "video"
	}
	source := c.Source
	if source == "" {
		source = "unknown"
	}
	score := c.ConvictionScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return &types.FvsIdea{
		ID:              uuid.New(),
		ClientID:        clientID,
		Topic:           topic,
		Hypothesis:      c.Hypothesis,
		SourceSignal:    source,
		TargetFormat:    targetFormat,
		ConvictionScore: score,
		Status:          types.IdeaProposed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *ideaService) GetIdeas(ctx context.Context, clientID uuid.UUID, status types.IdeaStatus, limit int) ([]*types.FvsIdea, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}
	return s.ideaRepo.ListByClient(ctx, nil, clientID, status, limit)
}

func (s *ideaService) UpdateIdeaStatus(ctx context.Context, clientID, ideaID uuid.UUID, next types.IdeaStatus, override bool) (*types.FvsIdea, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, next)
	}
	idea, err := s.ideaRepo.GetByID(ctx, nil, clientID, ideaID)
	if err != nil {
		return nil, fmt.Errorf("load idea: %w", err)
	}
	if idea == nil {
		return nil, ErrNotFound
	}
	if !override && !idea.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: illegal transition %s -> %s", ErrInvalidArgument, idea.Status, next)
	}
	if _, err := s.ideaRepo.UpdateFields(ctx, nil, clientID, ideaID, map[string]interface{}{
		"status": next,
	}); err != nil {
		return nil, fmt.Errorf("update idea: %w", err)
	}
	idea.Status = next
	return idea, nil
}

func mustJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return []byte(`{}`)
	}
	return raw
}
