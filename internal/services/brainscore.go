package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/config"
	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type BrainScoreSummary struct {
	TotalPredictions   int64               `json:"total_predictions"`
	Scored             int64               `json:"scored"`
	Correct            int64               `json:"correct"`
	AccuracyPercentage float64             `json:"accuracy_percentage"`
	Recent             []*types.BrainScore `json:"recent"`
}

type ActiveChallenge struct {
	Score         *types.BrainScore `json:"score"`
	DaysRemaining int               `json:"days_remaining"`
	Expired       bool              `json:"expired"`
}

type TrendPoint struct {
	WeekStart time.Time `json:"week_start"`
	Scored    int64     `json:"scored"`
	Correct   int64     `json:"correct"`
	Accuracy  float64   `json:"accuracy"`
}

type LeaderboardEntry struct {
	ClientID           uuid.UUID `json:"client_id"`
	TotalPredictions   int64     `json:"total_predictions"`
	Scored             int64     `json:"scored"`
	AccuracyPercentage float64   `json:"accuracy_percentage"`
}

type BrainScoreService interface {
	// Reconcile settles every pending prediction whose submission has
	// published and accrued observed analytics. Triggered by analytics
	// ingestion; safe to run repeatedly.
	Reconcile(ctx context.Context, clientID uuid.UUID) (int, error)
	GetBrainScores(ctx context.Context, clientID uuid.UUID) (*BrainScoreSummary, error)
	GetAccuracyTrend(ctx context.Context, clientID uuid.UUID, weeks int) ([]TrendPoint, error)
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	GetActiveChallenges(ctx context.Context, clientID uuid.UUID) ([]ActiveChallenge, error)
}

type brainScoreService struct {
	db     *gorm.DB
	log    *logger.Logger
	policy config.Policy

	scoreRepo      repos.BrainScoreRepo
	submissionRepo repos.SubmissionRepo
	analyticsRepo  repos.AnalyticsRepo

	notifier BrainNotifier
}

func NewBrainScoreService(
	db *gorm.DB,
	baseLog *logger.Logger,
	policy config.Policy,
	scoreRepo repos.BrainScoreRepo,
	submissionRepo repos.SubmissionRepo,
	analyticsRepo repos.AnalyticsRepo,
	notifier BrainNotifier,
) BrainScoreService {
	return &brainScoreService{
		db:             db,
		log:            baseLog.With("service", "BrainScoreService"),
		policy:         policy,
		scoreRepo:      scoreRepo,
		submissionRepo: submissionRepo,
		analyticsRepo:  analyticsRepo,
		notifier:       notifier,
	}
}

func (s *brainScoreService) tierThreshold(tier string) int64 {
	if tier == types.TierHigh {
		return s.policy.BreakoutViews
	}
	return s.policy.BaselineViews
}

func (s *brainScoreService) Reconcile(ctx context.Context, clientID uuid.UUID) (int, error) {
	pending, err := s.scoreRepo.ListPending(ctx, nil, clientID)
	if err != nil {
		return 0, fmt.Errorf("list pending scores: %w", err)
	}

	settled := 0
	for _, score := range pending {
		sub, err := s.submissionRepo.GetByID(ctx, nil, score.ClientID, score.SubmissionID)
		if err != nil {
			s.log.Warn("Reconcile: load submission failed", "score_id", score.ID, "error", err)
			continue
		}
		if sub == nil || (sub.Status != types.SubmissionPublished && sub.PlatformVideoID == "") {
			continue
		}
		snap, err := s.analyticsRepo.LatestBySubmissionID(ctx, nil, score.ClientID, score.SubmissionID)
		if err != nil {
			s.log.Warn("Reconcile: load analytics failed", "score_id", score.ID, "error", err)
			continue
		}
		if snap == nil {
			continue
		}

		threshold := s.tierThreshold(score.PredictedTier)
		verdict := types.VerdictIncorrect
		if snap.Views >= threshold {
			verdict = types.VerdictCorrect
		}
		reasoning := fmt.Sprintf(
			"Predicted %s tier (threshold %d views); observed %d views and %d likes: %s.",
			score.PredictedTier, threshold, snap.Views, snap.Likes, verdict,
		)

		now := time.Now()
		views := snap.Views
		likes := snap.Likes
		if _, err := s.scoreRepo.UpdateFields(ctx, nil, score.ID, map[string]interface{}{
			"actual_views":        views,
			"actual_likes":        likes,
			"performance_verdict": verdict,
			"verdict_reasoning":   reasoning,
			"scored_at":           now,
		}); err != nil {
			s.log.Warn("Reconcile: settle failed", "score_id", score.ID, "error", err)
			continue
		}

		score.ActualViews = &views
		score.ActualLikes = &likes
		score.PerformanceVerdict = verdict
		score.VerdictReasoning = reasoning
		score.ScoredAt = &now
		settled++
		s.notifier.ScoreSettled(score.ClientID, score)
	}
	return settled, nil
}

func (s *brainScoreService) GetBrainScores(ctx context.Context, clientID uuid.UUID) (*BrainScoreSummary, error) {
	scores, err := s.scoreRepo.ListByClient(ctx, nil, clientID, 0)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	summary := &BrainScoreSummary{Recent: scores}
	if len(scores) > 20 {
		summary.Recent = scores[:20]
	}
	for _, score := range scores {
		summary.TotalPredictions++
		if score.PerformanceVerdict != types.VerdictPending {
			summary.Scored++
		}
		if score.PerformanceVerdict == types.VerdictCorrect {
			summary.Correct++
		}
	}
	summary.AccuracyPercentage = accuracy(summary.Correct, summary.Scored)
	return summary, nil
}

// accuracy never divides by zero: no scored predictions means 0.
func accuracy(correct, scored int64) float64 {
	if scored == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(scored)*100*10) / 10
}

func (s *brainScoreService) GetAccuracyTrend(ctx context.Context, clientID uuid.UUID, weeks int) ([]TrendPoint, error) {
	if weeks <= 0 {
		weeks = 8
	}
	now := time.Now()
	since := now.AddDate(0, 0, -7*weeks)
	scores, err := s.scoreRepo.ListScoredSince(ctx, nil, clientID, since)
	if err != nil {
		return nil, fmt.Errorf("list scored: %w", err)
	}

	points := make([]TrendPoint, weeks)
	for i := range points {
		points[i].WeekStart = since.AddDate(0, 0, 7*i).Truncate(24 * time.Hour)
	}
	for _, score := range scores {
		if score.ScoredAt == nil {
			continue
		}
		bucket := int(score.ScoredAt.Sub(since).Hours() / (24 * 7))
		if bucket < 0 || bucket >= weeks {
			continue
		}
		points[bucket].Scored++
		if score.PerformanceVerdict == types.VerdictCorrect {
			points[bucket].Correct++
		}
	}
	for i := range points {
		points[i].Accuracy = accuracy(points[i].Correct, points[i].Scored)
	}
	return points, nil
}

func (s *brainScoreService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.scoreRepo.AccuracyByClient(ctx, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("aggregate accuracy: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LeaderboardEntry{
			ClientID:           row.ClientID,
			TotalPredictions:   row.Total,
			Scored:             row.Scored,
			AccuracyPercentage: accuracy(row.Correct, row.Scored),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AccuracyPercentage != entries[j].AccuracyPercentage {
			return entries[i].AccuracyPercentage > entries[j].AccuracyPercentage
		}
		return entries[i].Scored > entries[j].Scored
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *brainScoreService) GetActiveChallenges(ctx context.Context, clientID uuid.UUID) ([]ActiveChallenge, error) {
	pending, err := s.scoreRepo.ListPending(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	window := s.policy.ChallengeWindowDays
	now := time.Now()
	out := make([]ActiveChallenge, 0, len(pending))
	for _, score := range pending {
		elapsedDays := int(now.Sub(score.CreatedAt).Hours() / 24)
		remaining := window - elapsedDays
		ch := ActiveChallenge{Score: score, DaysRemaining: remaining}
		// Past-window predictions stay pending until explicitly closed;
		// they surface as expired with zero days left.
		if remaining < 0 {
			ch.DaysRemaining = 0
			ch.Expired = true
		}
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DaysRemaining < out[j].DaysRemaining
	})
	return out, nil
}
